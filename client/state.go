package client

import (
	"encoding/json"
	"fmt"
)

// PlayerState is one snapshot of the local player's transform. The JSON
// field names are the wire contract shared with the server and every other
// client; renaming them breaks interoperability.
type PlayerState struct {
	PlayerID string  `json:"playerId"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
	Yaw      float64 `json:"yaw"`
	Pitch    float64 `json:"pitch"`
}

// EncodeState serializes one snapshot to a single JSON record. Framing (the
// trailing newline) is the sync channel's concern.
func EncodeState(s PlayerState) ([]byte, error) {
	return json.Marshal(s)
}

// stateProbe mirrors PlayerState with pointer fields so a missing field is
// distinguishable from a zero value.
type stateProbe struct {
	PlayerID *string  `json:"playerId"`
	X        *float64 `json:"x"`
	Y        *float64 `json:"y"`
	Z        *float64 `json:"z"`
	Yaw      *float64 `json:"yaw"`
	Pitch    *float64 `json:"pitch"`
}

// DecodeState parses one inbound line. Every wire field must be present and
// well typed; a malformed record is reported as an error for the read loop
// to skip.
func DecodeState(line []byte) (PlayerState, error) {
	var p stateProbe
	if err := json.Unmarshal(line, &p); err != nil {
		return PlayerState{}, fmt.Errorf("decode state: %w", err)
	}
	if p.PlayerID == nil || p.X == nil || p.Y == nil || p.Z == nil || p.Yaw == nil || p.Pitch == nil {
		return PlayerState{}, fmt.Errorf("decode state: missing field in %q", line)
	}
	return PlayerState{
		PlayerID: *p.PlayerID,
		X:        *p.X,
		Y:        *p.Y,
		Z:        *p.Z,
		Yaw:      *p.Yaw,
		Pitch:    *p.Pitch,
	}, nil
}
