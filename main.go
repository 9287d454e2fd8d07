package main

import (
	"flag"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"

	"pocketvoxel/client"
)

// PocketVoxel entry: load settings, set up logging, then hand control to the
// ebiten frame loop hosting the touch-driven camera and the server sync
// channel.
func main() {
	var (
		configPath string
		addr       string
		debug      bool
	)
	flag.StringVar(&configPath, "config", "pocketvoxel.json", "path to the JSON settings file")
	flag.StringVar(&addr, "addr", "", "server address override (host:port or ws:// URL)")
	flag.BoolVar(&debug, "debug", false, "enable debug logging")
	flag.Parse()

	cfg, err := client.LoadConfig(configPath)
	if err != nil {
		panic(err)
	}
	if addr != "" {
		cfg.ServerAddr = addr
	}
	if debug {
		cfg.Debug = true
	}

	if err := client.InitLogger(cfg.LogFile, cfg.Debug); err != nil {
		panic(err)
	}
	defer client.SyncLogger()

	// One id per process; every snapshot this client ever sends carries it.
	playerID := uuid.NewString()
	client.Log.Infof("PocketVoxel starting, player %s, server %s", playerID, cfg.ServerAddr)

	metrics := &client.Metrics{}
	ch := client.NewSyncChannel(cfg.SendQueueSize, metrics)
	tracker := client.NewZoneTracker(float64(cfg.WindowWidth))
	cam := client.NewCamera(cfg)
	loop := client.NewLoop(playerID, tracker, cam, ch, metrics)
	game := client.NewGame(loop, tracker, cam, ch, metrics)

	// Connection establishment runs off the frame loop; a dead server just
	// means playing offline.
	ch.Connect(cfg.ServerAddr)
	defer ch.Close()

	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle("PocketVoxel")
	if err := ebiten.RunGame(game); err != nil {
		client.Log.Errorf("run: %v", err)
	}
	client.Log.Info("shutting down")
}
