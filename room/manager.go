// room/manager.go
package room

import (
	"errors"
	"sync"
	"time"

	"github.com/wfunc/partyroom/logger"
	"github.com/wfunc/partyroom/timer"
)

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrInvalidCapacity = errors.New("capacity must be a positive integer")
)

// Manager 管理所有房间。房间 id 由单调递增的计数器分配，从 0 开始，
// 回收后也不复用。
type Manager struct {
	rooms  map[int]*Room
	nextID int
	mutex  sync.RWMutex

	ttl     time.Duration
	expiry  *timer.ExpiryManager
	onEvict func(roomID int)
}

// NewManager creates a room manager. A positive ttl enables eviction of
// rooms idle longer than ttl, checked at sweep resolution; ttl 0 disables
// eviction entirely.
func NewManager(ttl, sweep time.Duration) *Manager {
	m := &Manager{
		rooms: make(map[int]*Room),
		ttl:   ttl,
	}
	if ttl > 0 {
		m.expiry = timer.NewExpiryManager(sweep)
	}
	return m
}

// SetOnEvict installs a hook called after a room is evicted, e.g. to update
// metrics. Must be set before rooms are created.
func (m *Manager) SetOnEvict(fn func(roomID int)) {
	m.onEvict = fn
}

// CreateRoom 创建一个新房间并登记。容量不合法时不分配 id。
func (m *Manager) CreateRoom(sheetRef string, capacity int) (*Room, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	m.mutex.Lock()
	id := m.nextID
	m.nextID++
	r := NewRoom(id, sheetRef, capacity)
	m.rooms[id] = r
	m.mutex.Unlock()

	if m.expiry != nil {
		m.expiry.Schedule(id, m.ttl, m.checkExpiry)
	}
	return r, nil
}

// GetRoom 获取一个房间。
func (m *Manager) GetRoom(id int) (*Room, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	r, exists := m.rooms[id]
	if !exists {
		return nil, ErrRoomNotFound
	}
	return r, nil
}

// RoomExists 纯查询，无副作用。
func (m *Manager) RoomExists(id int) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	_, exists := m.rooms[id]
	return exists
}

// Count 返回当前登记的房间数。
func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.rooms)
}

// Stats 返回房间总数和在场玩家总数，供管理接口使用。
func (m *Manager) Stats() (rooms, players int) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, r := range m.rooms {
		players += r.PlayerCount()
	}
	return len(m.rooms), players
}

// Close 停止过期回收。
func (m *Manager) Close() {
	if m.expiry != nil {
		m.expiry.Stop()
	}
}

// checkExpiry 在房间的过期时间到达后触发。仍有活动的房间按剩余
// 空闲额度顺延，真正闲置的房间被回收。
func (m *Manager) checkExpiry(id int) {
	m.mutex.Lock()
	r, exists := m.rooms[id]
	if !exists {
		m.mutex.Unlock()
		return
	}

	idle := time.Since(r.LastActive())
	if idle < m.ttl {
		m.mutex.Unlock()
		m.expiry.Schedule(id, m.ttl-idle, m.checkExpiry)
		return
	}

	delete(m.rooms, id)
	m.mutex.Unlock()

	logger.Log.Infof("Room %d evicted after %v idle", id, idle)
	if m.onEvict != nil {
		m.onEvict(id)
	}
}
