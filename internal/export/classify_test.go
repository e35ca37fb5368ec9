package export

import (
	"testing"

	"github.com/slack-go/slack"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		rec      *Record
		wantKind Kind
		wantRole ThreadRole
	}{
		{
			name: "plain user message",
			rec: &Record{
				Msg:         &slack.Msg{Text: "hello"},
				UserProfile: &UserProfile{DisplayName: "amy"},
			},
			wantKind: KindPlain,
			wantRole: RoleNone,
		},
		{
			name: "thread start has reply count and thread ts",
			rec: &Record{
				Msg: &slack.Msg{
					Text:            "anchor",
					ReplyCount:      3,
					ThreadTimestamp: "1690000000.000100",
				},
				UserProfile: &UserProfile{DisplayName: "amy"},
			},
			wantKind: KindPlain,
			wantRole: RoleThreadStart,
		},
		{
			name: "thread reply has only thread ts",
			rec: &Record{
				Msg: &slack.Msg{
					Text:            "reply",
					ThreadTimestamp: "1690000000.000100",
				},
				UserProfile: &UserProfile{DisplayName: "bob"},
			},
			wantKind: KindPlain,
			wantRole: RoleThreadReply,
		},
		{
			name: "attachment wins over user profile",
			rec: &Record{
				Msg: &slack.Msg{
					Text:  "see file",
					Files: []slack.File{{URLPrivate: "https://files.example.com/a.png"}},
				},
				UserProfile: &UserProfile{DisplayName: "amy"},
			},
			wantKind: KindAttachment,
			wantRole: RoleNone,
		},
		{
			name: "attachment with no usable URL still classifies",
			rec: &Record{
				Msg: &slack.Msg{Text: "see file", Files: []slack.File{{}}},
			},
			wantKind: KindAttachment,
			wantRole: RoleNone,
		},
		{
			name: "bot profile",
			rec: &Record{
				Msg: &slack.Msg{
					Text:       "deploy finished",
					BotProfile: &slack.BotProfile{Name: "deploybot"},
				},
			},
			wantKind: KindBot,
			wantRole: RoleNone,
		},
		{
			name: "bot id only",
			rec: &Record{
				Msg: &slack.Msg{Text: "deploy finished", BotID: "B123"},
			},
			wantKind: KindBot,
			wantRole: RoleNone,
		},
		{
			name: "threaded attachment keeps its role",
			rec: &Record{
				Msg: &slack.Msg{
					Text:            "in thread",
					ThreadTimestamp: "1690000000.000100",
					Files:           []slack.File{{URLPrivate: "https://files.example.com/b.png"}},
				},
			},
			wantKind: KindAttachment,
			wantRole: RoleThreadReply,
		},
		{
			name:     "no recognizable shape is ignorable",
			rec:      &Record{Msg: &slack.Msg{Type: "message", SubType: "channel_join"}},
			wantKind: KindIgnorable,
			wantRole: RoleNone,
		},
		{
			name: "threaded but otherwise shapeless is ignorable with no role",
			rec: &Record{
				Msg: &slack.Msg{ThreadTimestamp: "1690000000.000100"},
			},
			wantKind: KindIgnorable,
			wantRole: RoleNone,
		},
		{
			name:     "nil msg",
			rec:      &Record{},
			wantKind: KindIgnorable,
			wantRole: RoleNone,
		},
		{
			name:     "nil record",
			rec:      nil,
			wantKind: KindIgnorable,
			wantRole: RoleNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.rec)
			if got.Kind != tt.wantKind {
				t.Errorf("kind: got %v, want %v", got.Kind, tt.wantKind)
			}
			if got.Role != tt.wantRole {
				t.Errorf("role: got %v, want %v", got.Role, tt.wantRole)
			}
		})
	}
}
