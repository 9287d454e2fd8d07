package client

import (
	"bufio"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestConnectFailureRunsOffline(t *testing.T) {
	m := &Metrics{}
	c := NewSyncChannel(0, m)

	// Port 1 on loopback refuses immediately on any sane machine.
	c.Connect("127.0.0.1:1")
	waitForState(t, c, StateDisconnected, 15*time.Second)

	// The frame loop keeps calling; every call must be a silent no-op.
	for i := 0; i < 100; i++ {
		c.SendSnapshot(PlayerState{PlayerID: "p", X: float64(i)})
	}
	if got := m.Sent(); got != 0 {
		t.Errorf("snapshots sent while disconnected: %d", got)
	}
	c.Close()
}

func TestSendSnapshotOverTCP(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	lines := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		sc := bufio.NewScanner(conn)
		if sc.Scan() {
			lines <- sc.Text()
		}
	}()

	m := &Metrics{}
	c := NewSyncChannel(0, m)
	defer c.Close()
	c.Connect(ln.Addr().String())
	waitForState(t, c, StateConnected, 5*time.Second)

	want := PlayerState{PlayerID: "p1", X: 1.5, Y: 64, Z: -2.25, Yaw: 90, Pitch: -10}
	c.SendSnapshot(want)

	select {
	case line := <-lines:
		got, err := DecodeState([]byte(line))
		if err != nil {
			t.Fatalf("server could not decode %q: %v", line, err)
		}
		if got != want {
			t.Errorf("server received %+v, want %+v", got, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server never received the snapshot")
	}
	if m.Sent() != 1 {
		t.Errorf("snapshots sent = %d, want 1", m.Sent())
	}
}

func TestServerCloseEndsReceivePath(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		conn.Close()
	}()

	m := &Metrics{}
	c := NewSyncChannel(0, m)
	c.Connect(ln.Addr().String())

	// The read loop observes the closed stream and ends the channel.
	waitForState(t, c, StateClosed, 5*time.Second)

	// Later frames still call send; it must stay a silent no-op.
	for i := 0; i < 10; i++ {
		c.SendSnapshot(PlayerState{PlayerID: "p"})
	}
	c.Close()
}

func TestInboundLinesDecodedAndBadOnesSkipped(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		conn.Write([]byte(`{"playerId":"a","x":1,"y":2,"z":3,"yaw":4,"pitch":5}` + "\n"))
		conn.Write([]byte("!!! not a record !!!\n"))
		conn.Write([]byte(`{"playerId":"b","x":9,"y":8,"z":7,"yaw":6,"pitch":5}` + "\n"))
	}()

	m := &Metrics{}
	c := NewSyncChannel(0, m)
	defer c.Close()

	remote := make(chan PlayerState, 4)
	c.OnRemoteState = func(s PlayerState) { remote <- s }
	c.Connect(ln.Addr().String())

	var got []PlayerState
	for len(got) < 2 {
		select {
		case s := <-remote:
			got = append(got, s)
		case <-time.After(5 * time.Second):
			t.Fatalf("received %d remote states, want 2", len(got))
		}
	}
	if got[0].PlayerID != "a" || got[1].PlayerID != "b" {
		t.Errorf("remote state ids = %s, %s", got[0].PlayerID, got[1].PlayerID)
	}

	// The corrupt line in between was skipped, not fatal.
	waitForState(t, c, StateClosed, 5*time.Second)
	if got := m.Snapshot()["decode_errors"]; got != int64(1) {
		t.Errorf("decode errors = %v, want 1", got)
	}
	if m.Received() != 2 {
		t.Errorf("lines received = %d, want 2", m.Received())
	}
}

func TestCloseIdempotent(t *testing.T) {
	c := NewSyncChannel(0, &Metrics{})
	c.Close()
	c.Close()
	if c.State() != StateClosed {
		t.Errorf("state = %v, want closed", c.State())
	}

	// Connect after Close is a no-op; the lifecycle never restarts.
	c.Connect("127.0.0.1:1")
	if c.State() != StateClosed {
		t.Errorf("state after late Connect = %v, want closed", c.State())
	}
	c.SendSnapshot(PlayerState{PlayerID: "p"})
}

func TestWebsocketTransport(t *testing.T) {
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	received := make(chan string, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()
		_, payload, err := ws.ReadMessage()
		if err != nil {
			return
		}
		received <- string(payload)
		ws.WriteMessage(websocket.TextMessage,
			[]byte(`{"playerId":"srv","x":0,"y":0,"z":0,"yaw":0,"pitch":0}`+"\n"))
		// Hold the connection open until the client closes it.
		ws.ReadMessage()
	}))
	defer srv.Close()

	m := &Metrics{}
	c := NewSyncChannel(0, m)
	defer c.Close()

	remote := make(chan PlayerState, 1)
	c.OnRemoteState = func(s PlayerState) { remote <- s }

	addr := "ws" + strings.TrimPrefix(srv.URL, "http")
	c.Connect(addr)
	waitForState(t, c, StateConnected, 5*time.Second)

	want := PlayerState{PlayerID: "p1", X: 3, Y: 2, Z: 1, Yaw: 45, Pitch: 5}
	c.SendSnapshot(want)

	select {
	case msg := <-received:
		got, err := DecodeState([]byte(strings.TrimSuffix(msg, "\n")))
		if err != nil {
			t.Fatalf("server could not decode %q: %v", msg, err)
		}
		if got != want {
			t.Errorf("server received %+v, want %+v", got, want)
		}
		if !strings.HasSuffix(msg, "\n") {
			t.Errorf("message not newline framed: %q", msg)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server never received the snapshot")
	}

	select {
	case s := <-remote:
		if s.PlayerID != "srv" {
			t.Errorf("remote state id = %s, want srv", s.PlayerID)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("inbound websocket line never decoded")
	}
}

func TestDialStreamBadAddress(t *testing.T) {
	if _, err := dialStream("not a real address"); err == nil {
		t.Error("dialStream accepted a garbage address")
	}
}
