package server

import (
	"encoding/json"
	"errors"
	"net/http"
	netrpc "net/rpc"
	"time"

	"github.com/google/uuid"
	"github.com/wfunc/partyroom/game"
	"github.com/wfunc/partyroom/logger"
	"github.com/wfunc/partyroom/models"
	"github.com/wfunc/partyroom/monitor"
	"github.com/wfunc/partyroom/room"
	partyroom_rpc "github.com/wfunc/partyroom/rpc"
	"github.com/wfunc/partyroom/services"
)

// GameServer 对外提供轮询式 HTTP API，并附带一个管理用 RPC 服务。
type GameServer struct {
	addr      string
	rooms     *room.Manager
	service   *services.RoomService
	monitor   *monitor.Monitor
	rpcServer *partyroom_rpc.Server
}

func NewGameServer(addr, rpcAddr string, rooms *room.Manager, service *services.RoomService, mon *monitor.Monitor) *GameServer {
	s := &GameServer{
		addr:    addr,
		rooms:   rooms,
		service: service,
		monitor: mon,
	}

	// 初始化RPC服务器
	rpcServer, err := partyroom_rpc.NewServer(rpcAddr)
	if err != nil {
		logger.Log.Fatalf("Failed to create RPC server: %v", err)
	}
	s.rpcServer = rpcServer

	// 注册RPC服务
	admin := partyroom_rpc.NewRoomAdmin(rooms, service)
	netrpc.Register(admin)

	return s
}

func (s *GameServer) Start() error {
	go s.rpcServer.Start()

	logger.Log.Infof("Game server listening on %s", s.addr)
	return http.ListenAndServe(s.addr, s.Handler())
}

func (s *GameServer) Shutdown() {
	s.rpcServer.Stop()
}

// Handler builds the full route table. Split out so tests can drive the
// routes without a listener.
func (s *GameServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/create-game/{sheetID}/{numPlayers}", s.handleCreateGame)
	mux.HandleFunc("GET /api/join-game/{roomID}", s.handleJoinGame)
	mux.HandleFunc("GET /api/get-game/{roomID}", s.handleGetGame)
	mux.HandleFunc("GET /api/game-status/{roomID}", s.handleGameStatus)
	mux.HandleFunc("GET /api/set-gamemode/{roomID}/{gamemode}", s.handleSetGamemode)
	mux.HandleFunc("GET /api/reset-status/{roomID}", s.handleResetStatus)
	mux.HandleFunc("GET /api/get-role/{roomID}/{playerID}", s.handleGetRole)
	mux.HandleFunc("GET /api/get-all-roles/{roomID}", s.handleGetAllRoles)
	mux.HandleFunc("GET /api/list-gamemodes", s.handleListGamemodes)
	mux.HandleFunc("GET /api/available-gamemodes/{roomID}", s.handleAvailableGamemodes)

	return s.middleware(mux)
}

// middleware 统一处理 CORS、访问日志和指标
func (s *GameServer) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		start := time.Now()
		requestID := uuid.New().String()
		next.ServeHTTP(w, r)

		elapsed := time.Since(start)
		logger.Log.Infow("request",
			"id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"elapsed", elapsed,
		)
		if s.monitor != nil {
			s.monitor.ObserveRequest(elapsed)
		}
	})
}

func (s *GameServer) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	sheetID := r.PathValue("sheetID")
	numPlayers := r.PathValue("numPlayers")

	roomID, err := s.service.CreateRoom(sheetID, numPlayers)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if s.monitor != nil {
		s.monitor.RoomCreated(s.rooms.Count())
	}
	writeJSON(w, map[string]int{"roomID": roomID})
}

func (s *GameServer) handleJoinGame(w http.ResponseWriter, r *http.Request) {
	playerID, err := s.service.JoinRoom(r.PathValue("roomID"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	if s.monitor != nil {
		s.monitor.PlayerJoined()
	}
	writeJSON(w, map[string]int{"playerID": playerID})
}

// 开发调试用途，返回整个房间对象
func (s *GameServer) handleGetGame(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.service.Snapshot(r.PathValue("roomID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, map[string]*models.RoomSnapshot{"gameRoom": snapshot})
}

func (s *GameServer) handleGameStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.service.Status(r.PathValue("roomID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, status)
}

func (s *GameServer) handleSetGamemode(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.service.SelectMode(r.PathValue("roomID"), r.PathValue("gamemode"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	if s.monitor != nil {
		s.monitor.RolesDealt()
	}
	writeJSON(w, map[string]*models.RoomSnapshot{"gameRoom": snapshot})
}

func (s *GameServer) handleResetStatus(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.service.ResetStatus(r.PathValue("roomID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, map[string]*models.RoomSnapshot{"gameRoom": snapshot})
}

func (s *GameServer) handleGetRole(w http.ResponseWriter, r *http.Request) {
	role, err := s.service.PlayerRole(r.PathValue("roomID"), r.PathValue("playerID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, role)
}

func (s *GameServer) handleGetAllRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := s.service.AllRoles(r.PathValue("roomID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, map[string]map[string]string{"assignments": roles})
}

func (s *GameServer) handleListGamemodes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string][]game.ModeInfo{"gamemodes": s.service.ListModes()})
}

func (s *GameServer) handleAvailableGamemodes(w http.ResponseWriter, r *http.Request) {
	modes, err := s.service.AvailableModes(r.PathValue("roomID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, map[string][]game.ModeInfo{"gamemodes": modes})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}

// writeError 将领域错误映射为对外的错误消息。保持与旧前端兼容：
// 所有调用方错误都返回 400。
func (s *GameServer) writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	var message string

	switch {
	case errors.Is(err, services.ErrInvalidArgument), errors.Is(err, room.ErrInvalidCapacity):
		message = "Invalid parameter. Numbers expected."
	case errors.Is(err, room.ErrRoomNotFound):
		message = "Invalid roomID."
	case errors.Is(err, room.ErrRoomFull):
		message = "Game room is full."
	case errors.Is(err, room.ErrNoSuchPlayer):
		message = "Invalid playerID."
	case errors.Is(err, game.ErrUnknownMode):
		message = "Invalid gamemode."
	case errors.Is(err, game.ErrModeUnavailable):
		message = "Gamemode unavailable for current player count."
	default:
		status = http.StatusInternalServerError
		message = "Internal server error."
		logger.Log.Errorf("Unhandled error: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
