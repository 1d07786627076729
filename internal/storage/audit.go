package storage

import "fmt"

// AuditRepository appends audit lines to the audit_log table.
type AuditRepository struct {
	db *DB
}

func NewAuditRepository(db *DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Append(actor string, chatID int64, text string) error {
	_, err := r.db.db.Exec(`
		INSERT INTO audit_log (actor, chat_id, message) VALUES (?, ?, ?)
	`, actor, chatID, text)
	if err != nil {
		return fmt.Errorf("insert audit line: %w", err)
	}
	return nil
}
