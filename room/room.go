// room/room.go
package room

import (
	"errors"
	"sync"
	"time"

	"github.com/wfunc/partyroom/game"
	"github.com/wfunc/partyroom/models"
)

// RoomStatus 表示房间的业务状态
type RoomStatus int

const (
	// StatusWaiting 房间开放中：可加入、可选模式
	StatusWaiting RoomStatus = iota
	// StatusWaitingOnHost 一轮结束，等待房主下一步操作
	StatusWaitingOnHost
)

func (s RoomStatus) String() string {
	switch s {
	case StatusWaiting:
		return "waiting"
	case StatusWaitingOnHost:
		return "waiting_on_host"
	default:
		return "unknown"
	}
}

var (
	ErrRoomFull     = errors.New("game room is full")
	ErrNoSuchPlayer = errors.New("no such player in room")
)

// Player 房间内的一名玩家，加入后不可变
type Player struct {
	ID       int
	Label    string
	JoinedAt time.Time
}

// playerLabel derives the display label from the join position: A, B, C...
func playerLabel(id int) string {
	return string(rune('A' + id))
}

// Room 是一局派对游戏的核心结构。所有字段由内部锁保护，
// 调用方只通过下面的方法读写。
type Room struct {
	ID        int
	SheetRef  string
	Capacity  int
	CreatedAt time.Time

	status       RoomStatus
	players      []*Player
	nextPlayerID int
	modeID       int
	assignments  map[string]string
	lastActive   time.Time
	mutex        sync.RWMutex
}

// NewRoom 创建一个新房间。Capacity 的合法性由 Manager 校验。
func NewRoom(id int, sheetRef string, capacity int) *Room {
	now := time.Now()
	return &Room{
		ID:          id,
		SheetRef:    sheetRef,
		Capacity:    capacity,
		CreatedAt:   now,
		status:      StatusWaiting,
		assignments: make(map[string]string),
		lastActive:  now,
	}
}

// AddPlayer 添加一个玩家，返回分配到的玩家。玩家 id 由房间内的
// 串行计数器分配，而不是读取当前名单长度。
func (r *Room) AddPlayer() (*Player, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if len(r.players) >= r.Capacity {
		return nil, ErrRoomFull
	}

	player := &Player{
		ID:       r.nextPlayerID,
		Label:    playerLabel(r.nextPlayerID),
		JoinedAt: time.Now(),
	}
	r.nextPlayerID++
	r.players = append(r.players, player)
	r.touchLocked()
	return player, nil
}

// SelectMode 选择游戏模式并立即按当前名单生成角色。允许在名单未满时
// 调用：每次调用都按此刻在场的玩家重新生成，旧的分配被整体覆盖。
func (r *Room) SelectMode(m game.Mode) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if !m.Supports(len(r.players)) {
		return game.ErrModeUnavailable
	}

	roster := make([]string, len(r.players))
	for i, p := range r.players {
		roster[i] = p.Label
	}

	r.modeID = m.ID()
	r.assignments = m.Assign(roster)
	r.status = StatusWaiting
	r.touchLocked()
	return nil
}

// Reset 将房间置为等待房主状态。名单和已生成的角色保持不变，
// 用于在两轮之间暂停轮询中的客户端。
func (r *Room) Reset() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.status = StatusWaitingOnHost
	r.touchLocked()
}

// StatusInfo 返回当前状态和人数。
func (r *Room) StatusInfo() (status RoomStatus, actual, expected int) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.touchLocked()
	return r.status, len(r.players), r.Capacity
}

// Ready 当且仅当房间处于等待状态且人数已满时为真。
func (r *Room) Ready() bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.status == StatusWaiting && len(r.players) == r.Capacity
}

// Role 返回指定玩家的标签和角色文本。模式尚未选择时角色为空串。
func (r *Room) Role(playerID int) (label, role string, err error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if playerID < 0 || playerID >= len(r.players) {
		return "", "", ErrNoSuchPlayer
	}

	player := r.players[playerID]
	r.touchLocked()
	return player.Label, r.assignments[player.Label], nil
}

// AllRoles 返回当前角色分配的副本。
func (r *Room) AllRoles() map[string]string {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	roles := make(map[string]string, len(r.assignments))
	for label, role := range r.assignments {
		roles[label] = role
	}
	r.touchLocked()
	return roles
}

// PlayerCount 返回当前名单人数。
func (r *Room) PlayerCount() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.players)
}

// LastActive 返回最近一次操作时间，供过期回收判断。
func (r *Room) LastActive() time.Time {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.lastActive
}

// Snapshot 返回完整房间快照。
func (r *Room) Snapshot() models.RoomSnapshot {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	players := make([]models.PlayerInfo, 0, len(r.players))
	for _, p := range r.players {
		players = append(players, models.PlayerInfo{ID: p.ID, Label: p.Label})
	}

	assignments := make(map[string]string, len(r.assignments))
	for label, role := range r.assignments {
		assignments[label] = role
	}

	return models.RoomSnapshot{
		RoomID:      r.ID,
		SheetRef:    r.SheetRef,
		Capacity:    r.Capacity,
		Players:     players,
		GameMode:    r.modeID,
		Assignments: assignments,
		Status:      r.status.String(),
		CreatedAt:   r.CreatedAt,
	}
}

// 每次读写都刷新活跃时间，轮询中的客户端会让房间保持存活
func (r *Room) touchLocked() {
	r.lastActive = time.Now()
}
