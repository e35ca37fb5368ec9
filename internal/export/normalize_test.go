package export

import (
	"strings"
	"testing"

	"github.com/slack-go/slack"
)

func TestNormalize_Plain(t *testing.T) {
	rec := &Record{
		Msg: &slack.Msg{
			ClientMsgID: "m1",
			Text:        "<https://x.io|click>",
			Timestamp:   "1690000000.000000",
			User:        "U1",
		},
		UserProfile: &UserProfile{DisplayName: "Amy"},
	}
	table, _ := LoadUsers("")

	msg, note := Normalize(rec, Classify(rec), table)

	if note != "" {
		t.Errorf("unexpected degradation note: %q", note)
	}
	if got, want := msg.Body, "click (https://x.io)"; got != want {
		t.Errorf("body: got %q, want %q", got, want)
	}
	if got, want := msg.Author.DisplayLabel(), "Amy"; got != want {
		t.Errorf("author: got %q, want %q", got, want)
	}
	if got, want := msg.ID, "m1"; got != want {
		t.Errorf("id: got %q, want %q", got, want)
	}
	if msg.Time.Year() != 2023 {
		t.Errorf("year: got %d, want 2023", msg.Time.Year())
	}
}

func TestNormalize_AttachmentURLPreference(t *testing.T) {
	tests := []struct {
		name     string
		file     slack.File
		wantLine string
		wantNote bool
	}{
		{
			name:     "thumbnail preferred",
			file:     slack.File{Thumb1024: "https://files.example.com/thumb.png", URLPrivate: "https://files.example.com/orig.png"},
			wantLine: "https://files.example.com/thumb.png",
		},
		{
			name:     "original when no thumbnail",
			file:     slack.File{URLPrivate: "https://files.example.com/orig.png"},
			wantLine: "https://files.example.com/orig.png",
		},
		{
			name:     "tombstone placeholder when neither",
			file:     slack.File{},
			wantLine: tombstonePlaceholder,
			wantNote: true,
		},
	}

	table, _ := LoadUsers("")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &Record{
				Msg: &slack.Msg{Text: "have a look", User: "U1", Files: []slack.File{tt.file}},
			}
			msg, note := Normalize(rec, Classify(rec), table)

			if got, want := msg.Body, "have a look\n"+tt.wantLine; got != want {
				t.Errorf("body: got %q, want %q", got, want)
			}
			if (note != "") != tt.wantNote {
				t.Errorf("note: got %q, want note=%v", note, tt.wantNote)
			}
			if tt.wantNote && !strings.Contains(msg.Body, "unavailable") {
				t.Errorf("placeholder body missing unavailable marker: %q", msg.Body)
			}
		})
	}
}

func TestNormalize_Bot(t *testing.T) {
	table, _ := LoadUsers("")

	rec := &Record{
		Msg: &slack.Msg{
			Text:       "build passed",
			BotID:      "B123",
			BotProfile: &slack.BotProfile{Name: "ci-bot"},
		},
	}
	msg, note := Normalize(rec, Classify(rec), table)
	if note != "" {
		t.Errorf("unexpected degradation note: %q", note)
	}
	if got, want := msg.Author.DisplayLabel(), "ci-bot"; got != want {
		t.Errorf("author: got %q, want %q", got, want)
	}

	rec = &Record{Msg: &slack.Msg{Text: "build passed", BotID: "B123"}}
	msg, _ = Normalize(rec, Classify(rec), table)
	if got, want := msg.Author.DisplayLabel(), "B123"; got != want {
		t.Errorf("author without profile: got %q, want %q", got, want)
	}
}

func TestNormalize_UnifiedSchema(t *testing.T) {
	// Attachment and bot messages carry timestamps and thread roles the
	// same way plain messages do.
	table, _ := LoadUsers("")
	rec := &Record{
		Msg: &slack.Msg{
			Text:            "threaded upload",
			Timestamp:       "1690000000.000000",
			ThreadTimestamp: "1689999999.000000",
			User:            "U1",
			Files:           []slack.File{{URLPrivate: "https://files.example.com/f.png"}},
		},
	}
	msg, _ := Normalize(rec, Classify(rec), table)

	if msg.Kind != KindAttachment {
		t.Errorf("kind: got %v, want %v", msg.Kind, KindAttachment)
	}
	if msg.Role != RoleThreadReply {
		t.Errorf("role: got %v, want %v", msg.Role, RoleThreadReply)
	}
	if msg.Time.IsZero() {
		t.Error("attachment message lost its timestamp")
	}
}
