package export

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/slack-go/slack"
)

// Record is one entry of a Slack export file. It is the slack.Msg shape
// plus the fields that only appear in exports, not in the Web API.
type Record struct {
	*slack.Msg

	UserProfile *UserProfile `json:"user_profile,omitempty"`
	UserTeam    string       `json:"user_team,omitempty"`
	SourceTeam  string       `json:"source_team,omitempty"`
}

// UserProfile is the per-record embedded author profile found in exports.
type UserProfile struct {
	RealName    string `json:"real_name"`
	DisplayName string `json:"display_name"`
	Name        string `json:"name"`
	Team        string `json:"team"`
	FirstName   string `json:"first_name"`
	AvatarHash  string `json:"avatar_hash"`
}

// UnmarshalJSON decodes a record, tolerating exports that carry ts or
// thread_ts as JSON numbers instead of the usual string encoding.
func (r *Record) UnmarshalJSON(data []byte) error {
	type plain Record
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		fixed, ok := quoteTimestamps(data)
		if !ok {
			return err
		}
		if err2 := json.Unmarshal(fixed, &p); err2 != nil {
			return err
		}
	}
	*r = Record(p)
	return nil
}

// quoteTimestamps rewrites numeric ts and thread_ts values into the
// string encoding the rest of the pipeline expects. The second result is
// false when nothing was rewritten.
func quoteTimestamps(data []byte) ([]byte, bool) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, false
	}

	changed := false
	for _, key := range []string{"ts", "thread_ts"} {
		if n, ok := m[key].(json.Number); ok {
			m[key] = n.String()
			changed = true
		}
	}
	if !changed {
		return nil, false
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, false
	}
	return out, true
}

// Time parses the record's "ts" field (epoch seconds with a fractional
// part, encoded as a string) into a UTC time. The zero time is returned
// for a missing or unparseable timestamp.
func (r *Record) Time() time.Time {
	return parseTimestamp(r.Timestamp)
}

func parseTimestamp(ts string) time.Time {
	if ts == "" {
		return time.Time{}
	}
	sec, err := strconv.ParseFloat(ts, 64)
	if err != nil {
		return time.Time{}
	}
	whole := int64(sec)
	frac := sec - float64(whole)
	return time.Unix(whole, int64(frac*1e9)).UTC()
}
