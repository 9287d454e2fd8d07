package client

import "sync/atomic"

// Metrics records the client's runtime counters for the stats overlay and
// the periodic debug log.
type Metrics struct {
	Frames        int64 // frames advanced
	SnapshotsSent int64 // snapshots queued for transmission
	SendsDropped  int64 // snapshots dropped because the queue was full
	SendErrors    int64 // write failures on the connection
	LinesReceived int64 // inbound lines decoded successfully
	DecodeErrors  int64 // inbound lines skipped as malformed
}

func (m *Metrics) IncFrame()        { atomic.AddInt64(&m.Frames, 1) }
func (m *Metrics) IncSnapshotSent() { atomic.AddInt64(&m.SnapshotsSent, 1) }
func (m *Metrics) IncSendDropped()  { atomic.AddInt64(&m.SendsDropped, 1) }
func (m *Metrics) IncSendError()    { atomic.AddInt64(&m.SendErrors, 1) }
func (m *Metrics) IncLineReceived() { atomic.AddInt64(&m.LinesReceived, 1) }
func (m *Metrics) IncDecodeError()  { atomic.AddInt64(&m.DecodeErrors, 1) }

func (m *Metrics) Sent() int64     { return atomic.LoadInt64(&m.SnapshotsSent) }
func (m *Metrics) Received() int64 { return atomic.LoadInt64(&m.LinesReceived) }

// Snapshot returns a read-only copy for logging.
func (m *Metrics) Snapshot() map[string]any {
	return map[string]any{
		"frames":         atomic.LoadInt64(&m.Frames),
		"snapshots_sent": atomic.LoadInt64(&m.SnapshotsSent),
		"sends_dropped":  atomic.LoadInt64(&m.SendsDropped),
		"send_errors":    atomic.LoadInt64(&m.SendErrors),
		"lines_received": atomic.LoadInt64(&m.LinesReceived),
		"decode_errors":  atomic.LoadInt64(&m.DecodeErrors),
	}
}
