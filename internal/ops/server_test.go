package ops

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nuclight.org/votebot/internal/poll"
	"nuclight.org/votebot/internal/storage"
)

type fakeLister struct {
	snaps []poll.Snapshot
}

func (f fakeLister) Snapshot() []poll.Snapshot { return f.snaps }

type fakeHistory struct {
	entries []storage.HistoryEntry
	err     error
}

func (f fakeHistory) Recent(chatID int64, limit int) ([]storage.HistoryEntry, error) {
	return f.entries, f.err
}

func testHandler(lister PollLister) http.Handler {
	return testServer(lister, fakeHistory{})
}

func testServer(lister PollLister, history HistoryReader) http.Handler {
	return New("127.0.0.1:0", lister, history, slog.New(slog.NewTextHandler(io.Discard, nil))).srv.Handler
}

func TestHealthz(t *testing.T) {
	h := testHandler(fakeLister{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "ok" {
		t.Errorf("body = %q, want ok", rec.Body.String())
	}
}

func TestPolls(t *testing.T) {
	deadline := time.Date(2024, 12, 24, 12, 0, 0, 0, time.UTC)
	h := testHandler(fakeLister{snaps: []poll.Snapshot{
		{ID: "abc", ChatID: 42, Options: 2, Deadline: deadline, State: poll.StateOpen},
	}})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/polls", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var snaps []poll.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snaps); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if len(snaps) != 1 || snaps[0].ID != "abc" || snaps[0].State != poll.StateOpen {
		t.Errorf("snapshot = %+v", snaps)
	}
}

func TestPolls_EmptyListIsValidJSON(t *testing.T) {
	h := testHandler(fakeLister{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/polls", nil))

	var snaps []poll.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snaps); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if len(snaps) != 0 {
		t.Errorf("snapshot = %+v, want empty", snaps)
	}
}

func TestHistory(t *testing.T) {
	h := testServer(fakeLister{}, fakeHistory{entries: []storage.HistoryEntry{
		{ID: "abc", ChatID: 42, StartedBy: "@tester", State: "closed"},
	}})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/history?chat_id=42", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var entries []storage.HistoryEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "abc" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestHistory_RequiresChatID(t *testing.T) {
	h := testServer(fakeLister{}, fakeHistory{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/history", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHistory_BadLimit(t *testing.T) {
	h := testServer(fakeLister{}, fakeHistory{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/history?chat_id=42&limit=zero", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
