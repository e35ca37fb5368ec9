package export

import "testing"

func TestFixMarkup(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "link token rewritten to label (url)",
			in:   "<https://x.io|click>",
			want: "click (https://x.io)",
		},
		{
			name: "link inside surrounding text",
			in:   "see <https://example.com/docs|the docs> for details",
			want: "see the docs (https://example.com/docs) for details",
		},
		{
			name: "multiple links",
			in:   "<https://a.io|a> and <https://b.io|b>",
			want: "a (https://a.io) and b (https://b.io)",
		},
		{
			name: "escaped quote entity",
			in:   "&gt; quoted line",
			want: "> quoted line",
		},
		{
			name: "plain text untouched",
			in:   "nothing special here",
			want: "nothing special here",
		},
		{
			name: "bare link without label untouched",
			in:   "<https://x.io>",
			want: "<https://x.io>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fixMarkup(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFixMarkup_Idempotent(t *testing.T) {
	inputs := []string{
		"<https://x.io|click>",
		"see <https://example.com/docs|the docs> &gt; done",
		"plain",
	}
	for _, in := range inputs {
		once := fixMarkup(in)
		twice := fixMarkup(once)
		if once != twice {
			t.Errorf("fixMarkup not idempotent for %q: once %q, twice %q", in, once, twice)
		}
	}
}
