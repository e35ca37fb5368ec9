package relay

import (
	"context"
	"fmt"

	"github.com/goodsign/monday"
	"go.uber.org/zap"

	"slackcord/internal/export"
)

// maxThreadName is the destination's limit on thread names.
const maxThreadName = 100

// DeliverySummary reports the outcome of one replay run.
type DeliverySummary struct {
	Messages      int
	PartsSent     int
	PartsFailed   int
	ThreadsOpened int
	Truncated     int
	Failures      []error
}

// Partial reports whether any delivery failed, part sends and thread
// opens alike.
func (s DeliverySummary) Partial() bool {
	return len(s.Failures) > 0
}

// Driver replays an ordered message list into a destination channel.
// Delivery is strictly sequential, one part at a time: destination
// ordering must match source ordering, and a thread cannot be created
// until its anchor message exists on the destination.
type Driver struct {
	policy SplitPolicy
	logger *zap.Logger
}

// NewDriver creates a replay driver with the given split policy.
func NewDriver(policy SplitPolicy, logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{policy: policy, logger: logger}
}

// Run delivers every message exactly once, in stored order, routing
// thread replies via the threads opened earlier in the run. With an
// empty message list it refuses to run and never contacts the messenger.
// A per-part failure is recorded and delivery continues; a run with any
// failure returns a partial-failure error alongside the summary.
func (d *Driver) Run(ctx context.Context, m Messenger, channelID string, msgs []export.Message, loc monday.Locale) (DeliverySummary, error) {
	var sum DeliverySummary

	if len(msgs) == 0 {
		return sum, ErrNothingParsed
	}

	tracker := newThreadTracker()
	sum.Messages = len(msgs)

	for i, msg := range msgs {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		parts, truncated := d.policy.Render(msg, loc)
		if truncated {
			sum.Truncated++
			d.logger.Warn("Message body over the split cap, content beyond it is dropped",
				zap.Int("message", i),
				zap.Int("cap", d.policy.MaxBody))
		}

		target := channelID
		if msg.Role == export.RoleThreadReply {
			target = tracker.route(channelID)
		}

		var lastID string
		for p, part := range parts {
			id, err := m.SendText(ctx, target, part)
			if err != nil {
				derr := &DeliveryError{MessageIndex: i, Part: p, Err: err}
				sum.PartsFailed++
				sum.Failures = append(sum.Failures, derr)
				d.logger.Error("Failed to deliver part",
					zap.Int("message", i),
					zap.Int("part", p),
					zap.Error(err))
				continue
			}
			sum.PartsSent++
			lastID = id
		}

		if msg.Role == export.RoleThreadStart {
			if lastID == "" {
				tracker.clear()
				d.logger.Error("Thread start message not delivered, replies will route to the parent channel",
					zap.Int("message", i))
				continue
			}
			threadID, err := m.CreateThread(ctx, channelID, lastID, threadName(msg, loc))
			if err != nil {
				tracker.clear()
				derr := &DeliveryError{MessageIndex: i, Part: len(parts) - 1, Err: err}
				sum.Failures = append(sum.Failures, derr)
				d.logger.Error("Failed to open thread, replies will route to the parent channel",
					zap.Int("message", i),
					zap.Error(err))
				continue
			}
			tracker.open(threadID)
			sum.ThreadsOpened++
		}
	}

	d.logger.Info("Replay complete",
		zap.Int("messages", sum.Messages),
		zap.Int("parts_sent", sum.PartsSent),
		zap.Int("parts_failed", sum.PartsFailed),
		zap.Int("threads_opened", sum.ThreadsOpened))

	if sum.Partial() {
		return sum, fmt.Errorf("replay partially failed: %d deliveries failed", len(sum.Failures))
	}
	return sum, nil
}

// threadName names the destination thread after the start message's
// author and date.
func threadName(msg export.Message, loc monday.Locale) string {
	name := fmt.Sprintf("%s %s", msg.Author.DisplayLabel(), export.FormatTimestamp(msg.Time, loc))
	runes := []rune(name)
	if len(runes) > maxThreadName {
		return string(runes[:maxThreadName])
	}
	return name
}
