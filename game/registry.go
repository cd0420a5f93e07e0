// game/registry.go
package game

import (
	"fmt"
	"sync"
)

// Registry 模式注册表，目录顺序与注册顺序一致
type Registry struct {
	mutex sync.RWMutex
	order []Mode
	byID  map[int]Mode
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID: make(map[int]Mode),
	}
}

// NewDefaultRegistry creates a registry with all built-in game modes.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(SleeperCells{})
	r.Register(SpyAmongUs{})
	r.Register(SecretPartners{})
	return r
}

// Register adds a mode to the catalog. Panics on a duplicate id, since the
// catalog is assembled once at startup.
func (r *Registry) Register(m Mode) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.byID[m.ID()]; exists {
		panic(fmt.Sprintf("game mode %d already registered", m.ID()))
	}
	r.byID[m.ID()] = m
	r.order = append(r.order, m)
}

// Resolve returns the mode for the given id.
func (r *Registry) Resolve(id int) (Mode, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	m, exists := r.byID[id]
	if !exists {
		return nil, ErrUnknownMode
	}
	return m, nil
}

// ListAll returns the full catalog in registration order.
func (r *Registry) ListAll() []ModeInfo {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	infos := make([]ModeInfo, 0, len(r.order))
	for _, m := range r.order {
		infos = append(infos, ModeInfo{ID: m.ID(), Description: m.Description()})
	}
	return infos
}

// ListAvailable returns the catalog filtered to modes playable with n players,
// in registration order.
func (r *Registry) ListAvailable(n int) []ModeInfo {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	infos := make([]ModeInfo, 0, len(r.order))
	for _, m := range r.order {
		if m.Supports(n) {
			infos = append(infos, ModeInfo{ID: m.ID(), Description: m.Description()})
		}
	}
	return infos
}
