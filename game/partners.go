// game/partners.go
package game

import "math/rand"

// SecretPartners 秘密搭档：玩家两两随机配对，各自的角色文本指向对方
type SecretPartners struct{}

func (SecretPartners) ID() int { return 3 }

func (SecretPartners) Description() string {
	return "Secret Partners: players are paired off, each knows only its partner"
}

func (SecretPartners) Supports(n int) bool {
	return n >= 2 && n%2 == 0
}

func (SecretPartners) Assign(roster []string) map[string]string {
	assignments := make(map[string]string, len(roster))

	// 随机洗牌后按相邻两人配对
	shuffled := make([]string, len(roster))
	copy(shuffled, roster)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	for i := 0; i < len(shuffled); i += 2 {
		a, b := shuffled[i], shuffled[i+1]
		assignments[a] = "Your secret partner is " + b + ". Work together without being caught."
		assignments[b] = "Your secret partner is " + a + ". Work together without being caught."
	}

	return assignments
}
