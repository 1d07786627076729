package poll

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"
)

//go:embed templates/*.html
var templates embed.FS

// fallbackEmoji is shown by clients that cannot resolve a custom emoji id.
const fallbackEmoji = "🙂"

var tmplFuncs = template.FuncMap{
	"formatTime": func(t time.Time) string {
		return t.Format("2006-01-02 15:04")
	},
	"emoji": renderEmoji,
}

var announcementTmpl *template.Template
var resultsTmpl *template.Template

func init() {
	var err error
	announcementTmpl, err = template.New("announcement.html").
		Funcs(tmplFuncs).ParseFS(templates, "templates/announcement.html")
	if err != nil {
		panic(err)
	}
	resultsTmpl, err = template.New("results.html").
		Funcs(tmplFuncs).ParseFS(templates, "templates/results.html")
	if err != nil {
		panic(err)
	}
}

// renderEmoji renders a standard emoji as-is and a custom emoji reference as
// the platform's inline custom emoji markup.
func renderEmoji(e Emoji) template.HTML {
	if e.IsCustomRef() {
		return template.HTML(fmt.Sprintf(`<tg-emoji emoji-id=%q>%s</tg-emoji>`, e.CustomID(), fallbackEmoji))
	}
	return template.HTML(template.HTMLEscapeString(string(e)))
}

// RenderAnnouncement renders the poll message: header, deadline, then one
// "<emoji> - <label>" line per option in definition order.
func RenderAnnouncement(def *Definition) (string, error) {
	var buf bytes.Buffer
	if err := announcementTmpl.Execute(&buf, def); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// RenderResults renders the results message from ranked entries: one
// "<count>x <emoji> - <label>" line per option in descending-count order,
// winners in bold.
func RenderResults(entries []TallyEntry) (string, error) {
	var buf bytes.Buffer
	if err := resultsTmpl.Execute(&buf, entries); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
