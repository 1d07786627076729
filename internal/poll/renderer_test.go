package poll

import (
	"strings"
	"testing"
	"time"
)

func TestRenderAnnouncement(t *testing.T) {
	def := &Definition{
		Options: []Option{
			{Emoji: "🐱", Label: "Cats"},
			{Emoji: "🐶", Label: "Dogs"},
		},
		Deadline: time.Date(2024, 12, 24, 12, 0, 0, 0, time.Local),
	}

	got, err := RenderAnnouncement(def)
	if err != nil {
		t.Fatalf("RenderAnnouncement failed: %v", err)
	}

	want := "Vote started!\n" +
		"<b>End time:</b> 2024-12-24 12:00\n" +
		"<b>Options:</b>\n" +
		"🐱 - Cats\n" +
		"🐶 - Dogs"
	if got != want {
		t.Errorf("RenderAnnouncement =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderAnnouncement_EscapesLabels(t *testing.T) {
	def := &Definition{
		Options:  []Option{{Emoji: "🐱", Label: "<b>Cats</b>"}},
		Deadline: time.Date(2024, 12, 24, 12, 0, 0, 0, time.Local),
	}

	got, err := RenderAnnouncement(def)
	if err != nil {
		t.Fatalf("RenderAnnouncement failed: %v", err)
	}
	if strings.Contains(got, "<b>Cats</b>") {
		t.Errorf("label not escaped: %q", got)
	}
}

func TestRenderAnnouncement_CustomEmoji(t *testing.T) {
	def := &Definition{
		Options:  []Option{{Emoji: "<:party:5368324170671202286>", Label: "Party"}},
		Deadline: time.Date(2024, 12, 24, 12, 0, 0, 0, time.Local),
	}

	got, err := RenderAnnouncement(def)
	if err != nil {
		t.Fatalf("RenderAnnouncement failed: %v", err)
	}
	if !strings.Contains(got, `<tg-emoji emoji-id="5368324170671202286">`) {
		t.Errorf("custom emoji not rendered as tg-emoji: %q", got)
	}
}

func TestRenderResults(t *testing.T) {
	entries := []TallyEntry{
		{Option: Option{Emoji: "🐱", Label: "Cats"}, Count: 3, Winner: true},
		{Option: Option{Emoji: "🐶", Label: "Dogs"}, Count: 1},
	}

	got, err := RenderResults(entries)
	if err != nil {
		t.Fatalf("RenderResults failed: %v", err)
	}

	want := "Vote ended!\n" +
		"<b>Results:</b>\n" +
		"<b>3x 🐱 - Cats</b>\n" +
		"1x 🐶 - Dogs"
	if got != want {
		t.Errorf("RenderResults =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderResults_Idempotent(t *testing.T) {
	entries := []TallyEntry{
		{Option: Option{Emoji: "🐱", Label: "Cats"}, Count: 2, Winner: true},
		{Option: Option{Emoji: "🐶", Label: "Dogs"}, Count: 2, Winner: true},
	}

	first, err := RenderResults(entries)
	if err != nil {
		t.Fatalf("RenderResults failed: %v", err)
	}
	second, err := RenderResults(entries)
	if err != nil {
		t.Fatalf("RenderResults failed: %v", err)
	}
	if first != second {
		t.Errorf("rendering is not idempotent:\n%q\n%q", first, second)
	}
}

func TestRenderResults_AllWinnersBold(t *testing.T) {
	entries := []TallyEntry{
		{Option: Option{Emoji: "🐱", Label: "Cats"}, Count: 2, Winner: true},
		{Option: Option{Emoji: "🐶", Label: "Dogs"}, Count: 2, Winner: true},
	}

	got, err := RenderResults(entries)
	if err != nil {
		t.Fatalf("RenderResults failed: %v", err)
	}
	if !strings.Contains(got, "<b>2x 🐱 - Cats</b>") || !strings.Contains(got, "<b>2x 🐶 - Dogs</b>") {
		t.Errorf("tied winners not both bold: %q", got)
	}
}
