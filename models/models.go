// models/models.go
package models

import (
	"time"
)

// PlayerInfo 玩家信息（用于房间快照）
type PlayerInfo struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// RoomSnapshot 房间快照，字段名与前端轮询协议保持一致
type RoomSnapshot struct {
	RoomID      int               `json:"roomID"`
	SheetRef    string            `json:"sheetID"`
	Capacity    int               `json:"numPlayers"`
	Players     []PlayerInfo      `json:"players"`
	GameMode    int               `json:"gameMode"` // 0 = not selected yet
	Assignments map[string]string `json:"assignments"`
	Status      string            `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// RoomStatusInfo 房间状态轮询结果
type RoomStatusInfo struct {
	Status          string `json:"status"`
	ActualPlayers   int    `json:"actualPlayers"`
	ExpectedPlayers int    `json:"expectedPlayers"`
}

// PlayerRole 单个玩家的角色
type PlayerRole struct {
	Name string `json:"name"`
	Role string `json:"role"`
}
