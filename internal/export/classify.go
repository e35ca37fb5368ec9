package export

// Kind is the semantic category of an export record.
type Kind int

const (
	// KindIgnorable marks records that produce no message (join/leave
	// events, records with no recognizable shape).
	KindIgnorable Kind = iota
	KindPlain
	KindBot
	KindAttachment
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindBot:
		return "bot"
	case KindAttachment:
		return "attachment"
	default:
		return "ignorable"
	}
}

// ThreadRole describes where a message sits in a thread, if anywhere.
type ThreadRole int

const (
	RoleNone ThreadRole = iota
	RoleThreadStart
	RoleThreadReply
)

func (r ThreadRole) String() string {
	switch r {
	case RoleThreadStart:
		return "thread_start"
	case RoleThreadReply:
		return "thread_reply"
	default:
		return "none"
	}
}

// Classification is the result of classifying one record.
type Classification struct {
	Kind Kind
	Role ThreadRole
}

// Classify inspects a record and determines its kind and thread role.
// It is total: every record classifies, and a record that matches no
// known shape is KindIgnorable rather than an error.
//
// Thread role is decided first: a record carrying both a reply count and
// a thread timestamp anchors a thread; a record carrying only the thread
// timestamp is a reply into one. Kind is decided by the first matching
// shape: attachments, then bots, then plain user messages.
func Classify(rec *Record) Classification {
	var c Classification

	if rec == nil || rec.Msg == nil {
		return c
	}

	switch {
	case rec.ReplyCount > 0 && rec.ThreadTimestamp != "":
		c.Role = RoleThreadStart
	case rec.ThreadTimestamp != "":
		c.Role = RoleThreadReply
	}

	switch {
	case len(rec.Files) > 0:
		c.Kind = KindAttachment
	case rec.BotProfile != nil || rec.BotID != "":
		c.Kind = KindBot
	case rec.UserProfile != nil && rec.Text != "":
		c.Kind = KindPlain
	default:
		c.Kind = KindIgnorable
		c.Role = RoleNone
	}

	return c
}
