// services/room_service.go
package services

import (
	"errors"
	"strconv"

	"github.com/wfunc/partyroom/game"
	"github.com/wfunc/partyroom/models"
	"github.com/wfunc/partyroom/room"
)

// ErrInvalidArgument 入参不是合法整数或超出范围
var ErrInvalidArgument = errors.New("invalid parameter, numbers expected")

// RoomService 是请求层调用的同步核心 API。所有 id 以文本传入，
// 这里统一校验为合法整数后再进入领域层。
type RoomService struct {
	rooms *room.Manager
	modes *game.Registry
}

func NewRoomService(rooms *room.Manager, modes *game.Registry) *RoomService {
	return &RoomService{rooms: rooms, modes: modes}
}

// parseID 将文本 id 解析为非负整数。
func parseID(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, ErrInvalidArgument
	}
	return n, nil
}

func (s *RoomService) lookup(roomID string) (*room.Room, error) {
	id, err := parseID(roomID)
	if err != nil {
		return nil, err
	}
	return s.rooms.GetRoom(id)
}

// CreateRoom 创建房间并返回房间 id。
func (s *RoomService) CreateRoom(sheetRef, numPlayers string) (int, error) {
	capacity, err := strconv.Atoi(numPlayers)
	if err != nil {
		return 0, ErrInvalidArgument
	}

	r, err := s.rooms.CreateRoom(sheetRef, capacity)
	if err != nil {
		return 0, err
	}
	return r.ID, nil
}

// JoinRoom 加入房间并返回分配的玩家 id。
func (s *RoomService) JoinRoom(roomID string) (int, error) {
	r, err := s.lookup(roomID)
	if err != nil {
		return 0, err
	}

	player, err := r.AddPlayer()
	if err != nil {
		return 0, err
	}
	return player.ID, nil
}

// SelectMode 选择游戏模式，生成角色，返回完整房间快照。
func (s *RoomService) SelectMode(roomID, modeID string) (*models.RoomSnapshot, error) {
	r, err := s.lookup(roomID)
	if err != nil {
		return nil, err
	}

	id, err := parseID(modeID)
	if err != nil {
		return nil, err
	}

	mode, err := s.modes.Resolve(id)
	if err != nil {
		return nil, err
	}

	if err := r.SelectMode(mode); err != nil {
		return nil, err
	}

	snapshot := r.Snapshot()
	return &snapshot, nil
}

// Status 返回房间状态。人满且处于等待状态时报告 "ready"。
func (s *RoomService) Status(roomID string) (*models.RoomStatusInfo, error) {
	r, err := s.lookup(roomID)
	if err != nil {
		return nil, err
	}

	status, actual, expected := r.StatusInfo()
	name := status.String()
	if status == room.StatusWaiting && actual == expected {
		name = "ready"
	}

	return &models.RoomStatusInfo{
		Status:          name,
		ActualPlayers:   actual,
		ExpectedPlayers: expected,
	}, nil
}

// ResetStatus 将房间置为等待房主状态，返回快照。
func (s *RoomService) ResetStatus(roomID string) (*models.RoomSnapshot, error) {
	r, err := s.lookup(roomID)
	if err != nil {
		return nil, err
	}

	r.Reset()
	snapshot := r.Snapshot()
	return &snapshot, nil
}

// PlayerRole 返回某个玩家的标签和角色文本。
func (s *RoomService) PlayerRole(roomID, playerID string) (*models.PlayerRole, error) {
	r, err := s.lookup(roomID)
	if err != nil {
		return nil, err
	}

	id, err := parseID(playerID)
	if err != nil {
		return nil, err
	}

	label, role, err := r.Role(id)
	if err != nil {
		return nil, err
	}
	return &models.PlayerRole{Name: label, Role: role}, nil
}

// AllRoles 返回当前全部角色分配。
func (s *RoomService) AllRoles(roomID string) (map[string]string, error) {
	r, err := s.lookup(roomID)
	if err != nil {
		return nil, err
	}
	return r.AllRoles(), nil
}

// Snapshot 返回完整房间对象（开发调试用途）。
func (s *RoomService) Snapshot(roomID string) (*models.RoomSnapshot, error) {
	r, err := s.lookup(roomID)
	if err != nil {
		return nil, err
	}

	snapshot := r.Snapshot()
	return &snapshot, nil
}

// ListModes 返回完整模式目录。
func (s *RoomService) ListModes() []game.ModeInfo {
	return s.modes.ListAll()
}

// AvailableModes 返回该房间当前人数可玩的模式。
func (s *RoomService) AvailableModes(roomID string) ([]game.ModeInfo, error) {
	r, err := s.lookup(roomID)
	if err != nil {
		return nil, err
	}
	return s.modes.ListAvailable(r.PlayerCount()), nil
}
