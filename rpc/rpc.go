package rpc

import (
	"net"
	"net/rpc"
	"strconv"

	"github.com/wfunc/partyroom/logger"
	"github.com/wfunc/partyroom/models"
	"github.com/wfunc/partyroom/room"
	"github.com/wfunc/partyroom/services"
)

// Server manages the RPC listener for the admin interface.
type Server struct {
	listener net.Listener
	address  string
}

// NewServer creates a new RPC server.
func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			// Check if the error is due to the listener being closed.
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// RoomAdmin exposes operational queries over net/rpc.
type RoomAdmin struct {
	rooms   *room.Manager
	service *services.RoomService
}

// NewRoomAdmin creates the admin RPC service.
func NewRoomAdmin(rooms *room.Manager, service *services.RoomService) *RoomAdmin {
	return &RoomAdmin{rooms: rooms, service: service}
}

type StatsArgs struct{}

type StatsReply struct {
	Rooms   int
	Players int
}

// Stats returns room and player totals.
func (a *RoomAdmin) Stats(args *StatsArgs, reply *StatsReply) error {
	rooms, players := a.rooms.Stats()
	reply.Rooms = rooms
	reply.Players = players
	return nil
}

type SnapshotArgs struct {
	RoomID int
}

type SnapshotReply struct {
	Room models.RoomSnapshot
}

// Snapshot returns the full state of one room.
func (a *RoomAdmin) Snapshot(args *SnapshotArgs, reply *SnapshotReply) error {
	snapshot, err := a.service.Snapshot(strconv.Itoa(args.RoomID))
	if err != nil {
		return err
	}
	reply.Room = *snapshot
	return nil
}
