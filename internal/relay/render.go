package relay

import (
	"fmt"

	"github.com/goodsign/monday"

	"slackcord/internal/export"
)

// SplitPolicy controls how a rendered message is fitted under the
// destination's per-message length limit. The defaults reproduce the
// historical two-part behavior exactly: a message whose rendered form
// reaches the limit is split into parts (1/2) and (2/2) carrying body
// characters [0,1900) and [1900,3800), and anything beyond 3800 body
// characters is deliberately discarded.
type SplitPolicy struct {
	// MessageLimit is the destination's maximum message length.
	MessageLimit int
	// PartSize is the number of body characters carried by each part of
	// a split message.
	PartSize int
	// MaxBody caps the total body characters a split message retains;
	// content beyond it is dropped with a truncation warning.
	MaxBody int
}

// DefaultSplitPolicy matches Discord's 2000-character limit with headroom
// for the timestamp/author prefix.
func DefaultSplitPolicy() SplitPolicy {
	return SplitPolicy{
		MessageLimit: 2000,
		PartSize:     1900,
		MaxBody:      3800,
	}
}

// Render produces the deliverable parts for a message under this policy.
// Parts are produced fresh at send time so a locale change takes effect
// without re-parsing. The second result reports whether body content was
// truncated. Lengths are measured in characters, not bytes.
func (p SplitPolicy) Render(msg export.Message, loc monday.Locale) ([]string, bool) {
	prefix := fmt.Sprintf("%s - %s: ", export.FormatTimestamp(msg.Time, loc), msg.Author.DisplayLabel())

	full := prefix + msg.Body
	if len([]rune(full)) < p.MessageLimit {
		return []string{full}, false
	}

	body := []rune(msg.Body)
	truncated := len(body) > p.MaxBody

	end1 := min(p.PartSize, len(body))
	end2 := min(p.MaxBody, len(body))

	part1 := prefix + "(1/2) " + string(body[:end1])
	part2 := prefix + "(2/2) " + string(body[end1:end2])

	return []string{part1, part2}, truncated
}
