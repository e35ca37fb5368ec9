package export

import (
	"time"
)

// tombstonePlaceholder replaces the attachment URL when a file carries no
// usable URL at any known size key (deleted or tombstoned uploads).
const tombstonePlaceholder = "attachment unavailable"

// Message is the canonical, immutable form of one export record.
// Ordering among messages is the ordering of their source records;
// messages are never re-sorted.
type Message struct {
	ID     string
	Time   time.Time
	Author User
	Body   string
	Kind   Kind
	Role   ThreadRole
}

// Normalize converts a classified record into a Message. The returned
// note is non-empty when placeholder content was substituted for missing
// fields; such degradations are recoverable and never abort the file.
//
// Normalize must not be called with KindIgnorable classifications.
func Normalize(rec *Record, cls Classification, users *UserTable) (Message, string) {
	msg := Message{
		ID:   rec.ClientMsgID,
		Time: rec.Time(),
		Kind: cls.Kind,
		Role: cls.Role,
	}

	var note string

	switch cls.Kind {
	case KindAttachment:
		msg.Author = users.Resolve(rec.User, rec.UserProfile)
		url := attachmentURL(rec)
		if url == "" {
			url = tombstonePlaceholder
			note = "attachment has no usable URL"
		}
		msg.Body = fixMarkup(rec.Text) + "\n" + url

	case KindBot:
		msg.Author = botIdentity(rec)
		msg.Body = fixMarkup(rec.Text)

	default:
		msg.Author = users.Resolve(rec.User, rec.UserProfile)
		msg.Body = fixMarkup(rec.Text)
	}

	return msg, note
}

// attachmentURL picks the best available URL for the record's first file:
// the large thumbnail when present, else the original file URL. Large
// uploads frequently have no thumbnail, so the fallback is common.
func attachmentURL(rec *Record) string {
	if len(rec.Files) == 0 {
		return ""
	}
	f := rec.Files[0]
	if f.Thumb1024 != "" {
		return f.Thumb1024
	}
	return f.URLPrivate
}

// botIdentity synthesizes an identity for a bot-authored record from the
// bot profile name, falling back to the raw bot ID.
func botIdentity(rec *Record) User {
	u := User{ID: rec.BotID}
	if rec.BotProfile != nil {
		if u.ID == "" {
			u.ID = rec.BotProfile.ID
		}
		u.DisplayName = rec.BotProfile.Name
	}
	return u
}
