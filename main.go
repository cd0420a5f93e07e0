package main

import (
	"github.com/wfunc/partyroom/config"
	"github.com/wfunc/partyroom/game"
	"github.com/wfunc/partyroom/logger"
	"github.com/wfunc/partyroom/monitor"
	"github.com/wfunc/partyroom/room"
	"github.com/wfunc/partyroom/server"
	"github.com/wfunc/partyroom/services"
)

func main() {
	// Initialize logger
	logger.Init()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize metrics
	mon := monitor.NewMonitor("partyroom")
	mon.StartServer(cfg.Server.MetricsAddress)

	// Initialize room manager and game mode catalog
	rooms := room.NewManager(cfg.Room.TTL(), cfg.Room.Sweep())
	rooms.SetOnEvict(func(roomID int) {
		mon.RoomEvicted(rooms.Count())
	})
	modes := game.NewDefaultRegistry()

	service := services.NewRoomService(rooms, modes)

	// Initialize Game Server
	gameServer := server.NewGameServer(cfg.Server.HTTPAddress, cfg.Server.RPCAddress, rooms, service, mon)

	// Start Server
	logger.Log.Infof("Starting party room server on %s", cfg.Server.HTTPAddress)
	if err := gameServer.Start(); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}
