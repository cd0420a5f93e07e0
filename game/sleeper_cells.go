// game/sleeper_cells.go
package game

import "strings"

// SleeperCells 潜伏细胞模式：前两名玩家为 Leader，其余玩家平分为两组 Recruit
//
// The first two roster positions are the opposing Leaders. The remaining
// players are split between them; each Leader's role text names its own
// Recruits by label, each Recruit only learns it has a Leader to find.
// When the recruit count is odd the first Leader takes the smaller half.
type SleeperCells struct{}

func (SleeperCells) ID() int { return 1 }

func (SleeperCells) Description() string {
	return "Sleeper Cells: two rival Leaders secretly signal their Recruits"
}

func (SleeperCells) Supports(n int) bool {
	return n >= 4
}

func (SleeperCells) Assign(roster []string) map[string]string {
	assignments := make(map[string]string, len(roster))

	recruits := roster[2:]
	half := len(recruits) / 2 // floor

	assignments[roster[0]] = "You are a Leader. Signal your Recruits: " + strings.Join(recruits[:half], ",")
	assignments[roster[1]] = "You are a Leader. Signal your Recruits: " + strings.Join(recruits[half:], ",")
	for _, label := range recruits {
		assignments[label] = "You are a Recruit. Find your Leader."
	}

	return assignments
}
