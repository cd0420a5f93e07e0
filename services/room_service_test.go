package services

import (
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/wfunc/partyroom/game"
	"github.com/wfunc/partyroom/logger"
	"github.com/wfunc/partyroom/room"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func newTestService() *RoomService {
	return NewRoomService(room.NewManager(0, 0), game.NewDefaultRegistry())
}

func TestRoomService_CreateRoom_Validation(t *testing.T) {
	service := newTestService()

	if _, err := service.CreateRoom("sheet", "abc"); err != ErrInvalidArgument {
		t.Errorf("Expected ErrInvalidArgument for non-numeric capacity, got %v", err)
	}
	if _, err := service.CreateRoom("sheet", "0"); err != room.ErrInvalidCapacity {
		t.Errorf("Expected ErrInvalidCapacity for zero capacity, got %v", err)
	}
	if _, err := service.CreateRoom("sheet", "-3"); err != room.ErrInvalidCapacity {
		t.Errorf("Expected ErrInvalidCapacity for negative capacity, got %v", err)
	}

	// No id may be burned by the rejected attempts.
	roomID, err := service.CreateRoom("sheet", "4")
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}
	if roomID != 0 {
		t.Errorf("Expected room id 0, got %d", roomID)
	}
}

func TestRoomService_JoinRoom(t *testing.T) {
	service := newTestService()

	roomID, _ := service.CreateRoom("sheet", "2")
	key := strconv.Itoa(roomID)

	for i := 0; i < 2; i++ {
		playerID, err := service.JoinRoom(key)
		if err != nil {
			t.Fatalf("Join %d failed: %v", i, err)
		}
		if playerID != i {
			t.Errorf("Expected player id %d, got %d", i, playerID)
		}
	}

	if _, err := service.JoinRoom(key); err != room.ErrRoomFull {
		t.Errorf("Expected ErrRoomFull, got %v", err)
	}
	if _, err := service.JoinRoom("99"); err != room.ErrRoomNotFound {
		t.Errorf("Expected ErrRoomNotFound, got %v", err)
	}
	if _, err := service.JoinRoom("nope"); err != ErrInvalidArgument {
		t.Errorf("Expected ErrInvalidArgument, got %v", err)
	}
}

func TestRoomService_StatusReadiness(t *testing.T) {
	service := newTestService()

	roomID, _ := service.CreateRoom("sheet", "2")
	key := strconv.Itoa(roomID)

	status, err := service.Status(key)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if status.Status != "waiting" || status.ActualPlayers != 0 || status.ExpectedPlayers != 2 {
		t.Errorf("Unexpected empty-room status: %+v", status)
	}

	service.JoinRoom(key)
	service.JoinRoom(key)

	status, _ = service.Status(key)
	if status.Status != "ready" {
		t.Errorf("Full waiting room should report ready, got %s", status.Status)
	}

	// After reset the room is no longer ready until the host re-deals.
	if _, err := service.ResetStatus(key); err != nil {
		t.Fatalf("ResetStatus failed: %v", err)
	}
	status, _ = service.Status(key)
	if status.Status != "waiting_on_host" {
		t.Errorf("Expected waiting_on_host after reset, got %s", status.Status)
	}
}

func TestRoomService_SelectModeScenario(t *testing.T) {
	service := newTestService()

	roomID, _ := service.CreateRoom("X", "4")
	key := strconv.Itoa(roomID)
	for i := 0; i < 4; i++ {
		service.JoinRoom(key)
	}

	snapshot, err := service.SelectMode(key, "1")
	if err != nil {
		t.Fatalf("SelectMode failed: %v", err)
	}
	if snapshot.GameMode != 1 {
		t.Errorf("Expected game mode 1, got %d", snapshot.GameMode)
	}
	if snapshot.Status != "waiting" {
		t.Errorf("Expected status waiting after mode selection, got %s", snapshot.Status)
	}
	if len(snapshot.Assignments) != 4 {
		t.Fatalf("Expected 4 assignments, got %d", len(snapshot.Assignments))
	}

	// Players A and B lead, each referencing exactly one of C and D.
	for _, leader := range []string{"A", "B"} {
		if !strings.Contains(snapshot.Assignments[leader], "Leader") {
			t.Errorf("Player %s should be a Leader: %q", leader, snapshot.Assignments[leader])
		}
	}
	if !strings.HasSuffix(snapshot.Assignments["A"], "C") || !strings.HasSuffix(snapshot.Assignments["B"], "D") {
		t.Errorf("Unexpected recruit split: A=%q B=%q", snapshot.Assignments["A"], snapshot.Assignments["B"])
	}
}

func TestRoomService_SelectMode_Errors(t *testing.T) {
	service := newTestService()

	roomID, _ := service.CreateRoom("sheet", "4")
	key := strconv.Itoa(roomID)

	if _, err := service.SelectMode(key, "99"); err != game.ErrUnknownMode {
		t.Errorf("Expected ErrUnknownMode, got %v", err)
	}
	if _, err := service.SelectMode(key, "x"); err != ErrInvalidArgument {
		t.Errorf("Expected ErrInvalidArgument, got %v", err)
	}
	// Sleeper Cells needs 4 players, the room is still empty.
	if _, err := service.SelectMode(key, "1"); err != game.ErrModeUnavailable {
		t.Errorf("Expected ErrModeUnavailable, got %v", err)
	}
}

func TestRoomService_Roles(t *testing.T) {
	service := newTestService()

	roomID, _ := service.CreateRoom("sheet", "4")
	key := strconv.Itoa(roomID)
	for i := 0; i < 4; i++ {
		service.JoinRoom(key)
	}
	if _, err := service.SelectMode(key, "1"); err != nil {
		t.Fatalf("SelectMode failed: %v", err)
	}

	role, err := service.PlayerRole(key, "0")
	if err != nil {
		t.Fatalf("PlayerRole failed: %v", err)
	}
	if role.Name != "A" || role.Role == "" {
		t.Errorf("Unexpected role for player 0: %+v", role)
	}

	if _, err := service.PlayerRole(key, "9"); err != room.ErrNoSuchPlayer {
		t.Errorf("Expected ErrNoSuchPlayer, got %v", err)
	}
	if _, err := service.PlayerRole(key, "-1"); err != ErrInvalidArgument {
		t.Errorf("Expected ErrInvalidArgument for negative id, got %v", err)
	}

	roles, err := service.AllRoles(key)
	if err != nil {
		t.Fatalf("AllRoles failed: %v", err)
	}
	if len(roles) != 4 {
		t.Errorf("Expected 4 roles, got %d", len(roles))
	}

	// A re-deal replaces the mapping and stays consistent with PlayerRole.
	if _, err := service.ResetStatus(key); err != nil {
		t.Fatalf("ResetStatus failed: %v", err)
	}
	if _, err := service.SelectMode(key, "2"); err != nil {
		t.Fatalf("Re-deal failed: %v", err)
	}
	role, _ = service.PlayerRole(key, "0")
	roles, _ = service.AllRoles(key)
	if roles["A"] != role.Role {
		t.Errorf("PlayerRole and AllRoles disagree: %q vs %q", role.Role, roles["A"])
	}
}

func TestRoomService_ModeCatalog(t *testing.T) {
	service := newTestService()

	all := service.ListModes()
	if len(all) != 3 {
		t.Fatalf("Expected 3 modes, got %d", len(all))
	}

	roomID, _ := service.CreateRoom("sheet", "4")
	key := strconv.Itoa(roomID)
	service.JoinRoom(key)
	service.JoinRoom(key)
	service.JoinRoom(key)

	// With 3 players only the spy mode is playable.
	available, err := service.AvailableModes(key)
	if err != nil {
		t.Fatalf("AvailableModes failed: %v", err)
	}
	if len(available) != 1 || available[0].ID != 2 {
		t.Errorf("Expected only mode 2 for 3 players, got %+v", available)
	}

	if _, err := service.AvailableModes("99"); err != room.ErrRoomNotFound {
		t.Errorf("Expected ErrRoomNotFound, got %v", err)
	}
}
