package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"nuclight.org/votebot/internal/poll"
)

func testInstance() *poll.Instance {
	return &poll.Instance{
		ID: uuid.New(),
		Definition: &poll.Definition{
			Options: []poll.Option{
				{Emoji: "🐱", Label: "Cats"},
				{Emoji: "🐶", Label: "Dogs"},
			},
			Deadline: time.Now().Add(time.Hour),
		},
		Channel:    42,
		Originator: poll.Originator{ID: 7, Name: "@tester"},
		Message:    poll.MessageRef{Channel: 42, ID: 100},
		State:      poll.StateOpen,
		CreatedAt:  time.Now(),
	}
}

func TestHistoryRepository_RecordOpened(t *testing.T) {
	db := testDB(t)
	repo := NewHistoryRepository(db)
	inst := testInstance()

	if err := repo.RecordOpened(inst); err != nil {
		t.Fatalf("RecordOpened failed: %v", err)
	}

	entries, err := repo.Recent(42, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.ID != inst.ID.String() {
		t.Errorf("id = %q, want %q", e.ID, inst.ID.String())
	}
	if e.State != "open" {
		t.Errorf("state = %q, want open", e.State)
	}
	if e.StartedBy != "@tester" {
		t.Errorf("started_by = %q", e.StartedBy)
	}
	if e.Results != "" {
		t.Errorf("results should be empty before close, got %q", e.Results)
	}
}

func TestHistoryRepository_RecordOutcome(t *testing.T) {
	db := testDB(t)
	repo := NewHistoryRepository(db)
	inst := testInstance()

	if err := repo.RecordOpened(inst); err != nil {
		t.Fatalf("RecordOpened failed: %v", err)
	}

	inst.State = poll.StateClosed
	entries := []poll.TallyEntry{
		{Option: poll.Option{Emoji: "🐱", Label: "Cats"}, Count: 3, Winner: true},
		{Option: poll.Option{Emoji: "🐶", Label: "Dogs"}, Count: 1},
	}
	if err := repo.RecordOutcome(inst, entries); err != nil {
		t.Fatalf("RecordOutcome failed: %v", err)
	}

	stored, err := repo.Recent(42, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if stored[0].State != "closed" {
		t.Errorf("state = %q, want closed", stored[0].State)
	}
	if !strings.Contains(stored[0].Results, `"winner":true`) {
		t.Errorf("results missing winner flag: %q", stored[0].Results)
	}
}

func TestHistoryRepository_FailedOutcomeHasNoResults(t *testing.T) {
	db := testDB(t)
	repo := NewHistoryRepository(db)
	inst := testInstance()

	if err := repo.RecordOpened(inst); err != nil {
		t.Fatalf("RecordOpened failed: %v", err)
	}

	inst.State = poll.StateFailed
	if err := repo.RecordOutcome(inst, nil); err != nil {
		t.Fatalf("RecordOutcome failed: %v", err)
	}

	stored, err := repo.Recent(42, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if stored[0].State != "failed" {
		t.Errorf("state = %q, want failed", stored[0].State)
	}
	if stored[0].Results != "" {
		t.Errorf("failed poll should have no results, got %q", stored[0].Results)
	}
}

func TestAuditRepository_Append(t *testing.T) {
	db := testDB(t)
	repo := NewAuditRepository(db)

	if err := repo.Append("@tester", 42, "Vote started!"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	var count int
	if err := db.db.QueryRow("SELECT COUNT(*) FROM audit_log WHERE chat_id = 42").Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("audit_log rows = %d, want 1", count)
	}
}
