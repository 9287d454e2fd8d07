package client

import "time"

// statsInterval spaces the periodic metrics debug line.
const statsInterval = 5 * time.Second

// Loop is the per-frame orchestrator: zone input drives the camera, then the
// resulting state goes out through the sync channel. The platform wrapper
// calls Advance once per rendered frame with that frame's delta.
type Loop struct {
	playerID string // immutable for the process lifetime
	tracker  *ZoneTracker
	cam      *Camera
	ch       *SyncChannel
	metrics  *Metrics

	lastStats time.Time
}

func NewLoop(playerID string, tracker *ZoneTracker, cam *Camera, ch *SyncChannel, m *Metrics) *Loop {
	return &Loop{
		playerID:  playerID,
		tracker:   tracker,
		cam:       cam,
		ch:        ch,
		metrics:   m,
		lastStats: time.Now(),
	}
}

// Advance runs one frame: movement, look, then the outgoing snapshot.
func (l *Loop) Advance(delta float64) {
	l.metrics.IncFrame()

	if dx, dy, active := l.tracker.MoveVector(); active {
		l.cam.Move(dx, dy, delta)
	}
	l.cam.Look(l.tracker.LookDelta())

	l.ch.SendSnapshot(l.Snapshot())

	if now := time.Now(); now.Sub(l.lastStats) >= statsInterval {
		l.lastStats = now
		Log.Debugf("loop: %v", l.metrics.Snapshot())
	}
}

// Snapshot builds the wire record for the current frame.
func (l *Loop) Snapshot() PlayerState {
	return PlayerState{
		PlayerID: l.playerID,
		X:        l.cam.X,
		Y:        l.cam.Y,
		Z:        l.cam.Z,
		Yaw:      l.cam.Yaw,
		Pitch:    l.cam.Pitch,
	}
}
