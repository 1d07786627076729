package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"nuclight.org/votebot/internal/poll"
)

// HistoryRepository implements poll.History: one row per poll instance,
// inserted when the poll opens and updated with its outcome when it closes.
type HistoryRepository struct {
	db *DB
}

func NewHistoryRepository(db *DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

type optionRecord struct {
	Emoji string `json:"emoji"`
	Label string `json:"label"`
}

type resultRecord struct {
	Emoji  string `json:"emoji"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
	Winner bool   `json:"winner"`
}

func (r *HistoryRepository) RecordOpened(inst *poll.Instance) error {
	options := make([]optionRecord, 0, len(inst.Definition.Options))
	for _, opt := range inst.Definition.Options {
		options = append(options, optionRecord{Emoji: string(opt.Emoji), Label: opt.Label})
	}
	optionsJSON, err := json.Marshal(options)
	if err != nil {
		return fmt.Errorf("marshal options: %w", err)
	}

	_, err = r.db.db.Exec(`
		INSERT INTO polls (id, chat_id, message_id, started_by, deadline, state, options, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, inst.ID.String(), int64(inst.Channel), inst.Message.ID, inst.Originator.Name,
		inst.Definition.Deadline, string(inst.State), string(optionsJSON), inst.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert poll: %w", err)
	}
	return nil
}

func (r *HistoryRepository) RecordOutcome(inst *poll.Instance, entries []poll.TallyEntry) error {
	var resultsJSON sql.NullString
	if entries != nil {
		results := make([]resultRecord, 0, len(entries))
		for _, e := range entries {
			results = append(results, resultRecord{
				Emoji:  string(e.Option.Emoji),
				Label:  e.Option.Label,
				Count:  e.Count,
				Winner: e.Winner,
			})
		}
		data, err := json.Marshal(results)
		if err != nil {
			return fmt.Errorf("marshal results: %w", err)
		}
		resultsJSON = sql.NullString{String: string(data), Valid: true}
	}

	_, err := r.db.db.Exec(`
		UPDATE polls SET state = ?, results = ?, closed_at = ? WHERE id = ?
	`, string(inst.State), resultsJSON, time.Now(), inst.ID.String())
	if err != nil {
		return fmt.Errorf("update poll outcome: %w", err)
	}
	return nil
}

// HistoryEntry is one stored poll, as read back for inspection.
type HistoryEntry struct {
	ID        string    `json:"id"`
	ChatID    int64     `json:"chat_id"`
	StartedBy string    `json:"started_by"`
	Deadline  time.Time `json:"deadline"`
	State     string    `json:"state"`
	Results   string    `json:"results,omitempty"`
}

// Recent returns up to limit polls for the chat, newest first.
func (r *HistoryRepository) Recent(chatID int64, limit int) ([]HistoryEntry, error) {
	rows, err := r.db.db.Query(`
		SELECT id, chat_id, started_by, deadline, state, COALESCE(results, '')
		FROM polls
		WHERE chat_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, chatID, limit)
	if err != nil {
		return nil, fmt.Errorf("query polls: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.ID, &e.ChatID, &e.StartedBy, &e.Deadline, &e.State, &e.Results); err != nil {
			return nil, fmt.Errorf("scan poll: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
