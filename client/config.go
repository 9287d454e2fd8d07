package client

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config is the client's tunable surface. The server address used to be a
// compile-time constant; here it is a boundary input like everything else.
type Config struct {
	ServerAddr      string  `json:"serverAddr"`      // host:port, or ws://... for websocket transport
	MoveSpeed       float64 `json:"moveSpeed"`       // world units per second
	LookSensitivity float64 `json:"lookSensitivity"` // degrees per pixel of drag
	DeadZone        float64 `json:"deadZone"`        // pixels
	PitchLimit      float64 `json:"pitchLimit"`      // degrees, 0 = unbounded
	SendQueueSize   int     `json:"sendQueueSize"`
	WindowWidth     int     `json:"windowWidth"`
	WindowHeight    int     `json:"windowHeight"`
	LogFile         string  `json:"logFile"`
	Debug           bool    `json:"debug"`
}

func DefaultConfig() Config {
	return Config{
		ServerAddr:      "127.0.0.1:9155",
		MoveSpeed:       4.5,
		LookSensitivity: 0.2,
		DeadZone:        12,
		PitchLimit:      0,
		SendQueueSize:   64,
		WindowWidth:     960,
		WindowHeight:    540,
		LogFile:         "pocketvoxel.log",
	}
}

// LoadConfig reads a JSON settings file over the defaults. A missing file is
// not an error; the defaults stand.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
