package client

import (
	"bufio"
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// ConnState is the sync channel's lifecycle position. Transitions only move
// forward; a closed channel never reconnects.
type ConnState int

const (
	StateDisconnected ConnState = iota
	StateConnecting
	StateConnected
	StateClosed
)

func (s ConnState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// SyncChannel owns the connection to the game server: an asynchronous
// connect, a write pump fed by the frame loop, and a read loop consuming
// inbound broadcast lines. Every I/O failure degrades to offline operation;
// the frame loop never blocks on any of it.
type SyncChannel struct {
	mu    sync.Mutex
	state ConnState
	conn  io.ReadWriteCloser
	send  chan []byte

	group   errgroup.Group
	metrics *Metrics

	decodeLog rate.Sometimes
	sendLog   rate.Sometimes

	// OnRemoteState, when set before Connect, receives each decoded inbound
	// snapshot on the read goroutine. Remote state is otherwise logged and
	// discarded. A consumer that feeds rendered state must add a
	// single-writer handoff; the read goroutine must not touch frame-loop
	// state directly.
	OnRemoteState func(PlayerState)
}

func NewSyncChannel(queueSize int, m *Metrics) *SyncChannel {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &SyncChannel{
		state:     StateDisconnected,
		send:      make(chan []byte, queueSize),
		metrics:   m,
		decodeLog: rate.Sometimes{First: 3, Interval: 5 * time.Second},
		sendLog:   rate.Sometimes{First: 3, Interval: 5 * time.Second},
	}
}

// State reports the current lifecycle position.
func (c *SyncChannel) State() ConnState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Connect starts connection establishment off the frame loop. A failed dial
// is logged once and leaves the channel silent; there is no retry or
// backoff.
func (c *SyncChannel) Connect(addr string) {
	c.mu.Lock()
	if c.state != StateDisconnected {
		c.mu.Unlock()
		return
	}
	c.state = StateConnecting
	c.mu.Unlock()

	c.group.Go(func() error {
		conn, err := dialStream(addr)
		if err != nil {
			Log.Warnf("sync: connect failed, running offline: %v", err)
			c.mu.Lock()
			if c.state == StateConnecting {
				c.state = StateDisconnected
			}
			c.mu.Unlock()
			return nil
		}

		c.mu.Lock()
		if c.state != StateConnecting {
			// Close raced the dial; give the connection straight back.
			c.mu.Unlock()
			conn.Close()
			return nil
		}
		c.conn = conn
		c.state = StateConnected
		c.mu.Unlock()

		Log.Infof("sync: connected to %s", addr)
		c.group.Go(c.writePump)
		c.readLoop(conn)
		return nil
	})
}

// SendSnapshot encodes and queues one snapshot line. Not connected means a
// silent no-op; a full queue drops the snapshot rather than stall the
// frame.
func (c *SyncChannel) SendSnapshot(s PlayerState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateConnected {
		return
	}
	line, err := EncodeState(s)
	if err != nil {
		c.metrics.IncSendError()
		return
	}
	select {
	case c.send <- line:
		c.metrics.IncSnapshotSent()
	default:
		c.metrics.IncSendDropped()
	}
}

// writePump drains the send queue onto the connection, one newline-framed
// record per snapshot. A write error terminates the channel; queued lines
// left behind are drained without effect.
func (c *SyncChannel) writePump() error {
	for line := range c.send {
		c.mu.Lock()
		conn, state := c.conn, c.state
		c.mu.Unlock()
		if state != StateConnected || conn == nil {
			continue
		}
		if _, err := conn.Write(append(line, '\n')); err != nil {
			c.metrics.IncSendError()
			c.sendLog.Do(func() { Log.Warnf("sync: send failed: %v", err) })
			c.shutdown("write error")
		}
	}
	return nil
}

// readLoop consumes newline-delimited server broadcasts until the stream
// ends. A corrupt line is counted, logged and skipped; only the stream
// itself ends the loop.
func (c *SyncChannel) readLoop(conn io.Reader) {
	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		s, err := DecodeState(line)
		if err != nil {
			c.metrics.IncDecodeError()
			c.decodeLog.Do(func() { Log.Warnf("sync: skipping bad line: %v", err) })
			continue
		}
		c.metrics.IncLineReceived()
		if c.OnRemoteState != nil {
			c.OnRemoteState(s)
			continue
		}
		Log.Debugf("sync: remote state %s pos=(%.2f, %.2f, %.2f) yaw=%.1f pitch=%.1f",
			s.PlayerID, s.X, s.Y, s.Z, s.Yaw, s.Pitch)
	}
	if err := sc.Err(); err != nil {
		c.shutdown(fmt.Sprintf("read error: %v", err))
		return
	}
	c.shutdown("stream ended")
}

// shutdown moves the channel to Closed and releases the connection. Safe
// from any path; only the first call does work.
func (c *SyncChannel) shutdown(reason string) {
	c.mu.Lock()
	if c.state == StateClosed {
		c.mu.Unlock()
		return
	}
	c.state = StateClosed
	conn := c.conn
	c.conn = nil
	close(c.send)
	c.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
	Log.Infof("sync: closed (%s)", reason)
}

// Close releases the connection and joins the background tasks. Idempotent
// and safe to call from the disposal hook.
func (c *SyncChannel) Close() {
	c.shutdown("closed by client")
	_ = c.group.Wait()
}
