// game/mode.go
package game

import "errors"

var (
	// ErrUnknownMode is returned when a mode id is not in the registry.
	ErrUnknownMode = errors.New("unknown game mode")
	// ErrModeUnavailable is returned when a mode does not support the
	// current number of players.
	ErrModeUnavailable = errors.New("game mode unavailable for player count")
)

// Mode 游戏模式接口：根据玩家名单生成每个玩家的角色文本
type Mode interface {
	// ID is the numeric mode id used on the wire.
	ID() int
	// Description is a short human readable summary for mode selection.
	Description() string
	// Supports reports whether the mode can be played with n players.
	Supports(n int) bool
	// Assign maps every roster label to its role text. The roster is the
	// ordered list of player labels currently in the room. The result has
	// exactly one entry per roster member, and any label referenced inside
	// a role text is itself a roster member.
	Assign(roster []string) map[string]string
}

// ModeInfo 模式目录条目
type ModeInfo struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}
