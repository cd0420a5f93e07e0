package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Small test client: creates a game, fills it with players, polls the
// status endpoint until the room is ready, selects a mode and prints the
// dealt roles.

var (
	addr    = flag.String("addr", "http://localhost:8080", "server base URL")
	players = flag.Int("players", 4, "number of players to join")
	mode    = flag.Int("mode", 1, "gamemode id to select")
)

func get(path string, out interface{}) error {
	resp, err := http.Get(*addr + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errBody map[string]string
		json.NewDecoder(resp.Body).Decode(&errBody)
		return fmt.Errorf("%s: %s", resp.Status, errBody["error"])
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func main() {
	flag.Parse()

	var created struct {
		RoomID int `json:"roomID"`
	}
	if err := get(fmt.Sprintf("/api/create-game/demo-sheet/%d", *players), &created); err != nil {
		log.Fatalf("create-game failed: %v", err)
	}
	log.Printf("Created room %d", created.RoomID)

	for i := 0; i < *players; i++ {
		var joined struct {
			PlayerID int `json:"playerID"`
		}
		if err := get(fmt.Sprintf("/api/join-game/%d", created.RoomID), &joined); err != nil {
			log.Fatalf("join-game failed: %v", err)
		}
		log.Printf("Joined as player %d", joined.PlayerID)
	}

	// Poll until the room reports ready, the way the web client does.
	for {
		var status struct {
			Status          string `json:"status"`
			ActualPlayers   int    `json:"actualPlayers"`
			ExpectedPlayers int    `json:"expectedPlayers"`
		}
		if err := get(fmt.Sprintf("/api/game-status/%d", created.RoomID), &status); err != nil {
			log.Fatalf("game-status failed: %v", err)
		}
		log.Printf("Status: %s (%d/%d)", status.Status, status.ActualPlayers, status.ExpectedPlayers)
		if status.Status == "ready" {
			break
		}
		time.Sleep(time.Second)
	}

	var selected struct {
		GameRoom json.RawMessage `json:"gameRoom"`
	}
	if err := get(fmt.Sprintf("/api/set-gamemode/%d/%d", created.RoomID, *mode), &selected); err != nil {
		log.Fatalf("set-gamemode failed: %v", err)
	}

	var roles struct {
		Assignments map[string]string `json:"assignments"`
	}
	if err := get(fmt.Sprintf("/api/get-all-roles/%d", created.RoomID), &roles); err != nil {
		log.Fatalf("get-all-roles failed: %v", err)
	}
	for label, role := range roles.Assignments {
		log.Printf("%s: %s", label, role)
	}
}
