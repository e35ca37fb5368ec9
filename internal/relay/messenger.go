package relay

import (
	"context"
	"errors"
	"fmt"
)

// ErrNothingParsed is returned when a replay is requested before any
// successful parse pass. The destination is never contacted in that case.
var ErrNothingParsed = errors.New("nothing to post: no export files were parsed")

// DeliveryError records the failure of one part of one message. It does
// not abort the remaining parts; the run is reported as partially failed.
type DeliveryError struct {
	MessageIndex int
	Part         int
	Err          error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver message %d part %d: %v", e.MessageIndex, e.Part, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Messenger is the destination capability surface: a channel that accepts
// text and can open a thread anchored to a previously sent message.
// Implementations must be safe for sequential use; the driver never calls
// them concurrently.
type Messenger interface {
	// SendText posts text into a channel or thread and returns the
	// destination's ID for the created message.
	SendText(ctx context.Context, channelID, text string) (messageID string, err error)

	// CreateThread opens a thread anchored to an existing message and
	// returns the thread's channel ID.
	CreateThread(ctx context.Context, channelID, messageID, name string) (threadID string, err error)
}
