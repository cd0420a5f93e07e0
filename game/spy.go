// game/spy.go
package game

import "math/rand"

// 卧底模式的暗号词表
var spyCodewords = []string{
	"Lighthouse",
	"Carousel",
	"Submarine",
	"Avalanche",
	"Telescope",
	"Labyrinth",
	"Honeycomb",
	"Driftwood",
}

// SpyAmongUs 谁是卧底：随机一名玩家是卧底，其余玩家共享同一个暗号
type SpyAmongUs struct{}

func (SpyAmongUs) ID() int { return 2 }

func (SpyAmongUs) Description() string {
	return "Spy Among Us: everyone shares a codeword except one hidden Spy"
}

func (SpyAmongUs) Supports(n int) bool {
	return n >= 3
}

func (SpyAmongUs) Assign(roster []string) map[string]string {
	assignments := make(map[string]string, len(roster))

	spy := rand.Intn(len(roster))
	codeword := spyCodewords[rand.Intn(len(spyCodewords))]

	for i, label := range roster {
		if i == spy {
			assignments[label] = "You are the Spy. Blend in and guess the codeword."
		} else {
			assignments[label] = "The codeword is " + codeword + ". Find the Spy."
		}
	}

	return assignments
}
