package discord

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// threadArchiveMinutes is the auto-archive duration for created threads.
const threadArchiveMinutes = 1440 // one day

// api defines the Discord REST methods used by the client.
type api interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	MessageThreadStart(channelID, messageID string, name string, archiveDuration int, options ...discordgo.RequestOption) (*discordgo.Channel, error)
}

// Client implements relay.Messenger against the Discord REST API.
type Client struct {
	api    api
	logger *zap.Logger
}

// NewClient wraps a Discord session as a relay messenger.
func NewClient(session *discordgo.Session, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{api: session, logger: logger}
}

// newClientWithAPI creates a client with a given api (for testing).
func newClientWithAPI(a api, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{api: a, logger: logger}
}

// SendText posts text into a channel or thread and returns the created
// message's ID.
func (c *Client) SendText(ctx context.Context, channelID, text string) (string, error) {
	var msg *discordgo.Message
	err := withRetry(ctx, c.logger, func() error {
		var e error
		msg, e = c.api.ChannelMessageSend(channelID, text, discordgo.WithContext(ctx))
		return e
	})
	if err != nil {
		return "", err
	}
	return msg.ID, nil
}

// CreateThread opens a public thread anchored to an existing message.
func (c *Client) CreateThread(ctx context.Context, channelID, messageID, name string) (string, error) {
	var thread *discordgo.Channel
	err := withRetry(ctx, c.logger, func() error {
		var e error
		thread, e = c.api.MessageThreadStart(channelID, messageID, name, threadArchiveMinutes, discordgo.WithContext(ctx))
		return e
	})
	if err != nil {
		return "", err
	}
	return thread.ID, nil
}

// withRetry runs fn, waiting out Discord rate limits by respecting the
// retry-after duration the API reports. Any other error is returned to
// the caller unchanged.
func withRetry(ctx context.Context, logger *zap.Logger, fn func() error) error {
	for {
		err := fn()
		if err == nil {
			return nil
		}

		var rateLimitErr *discordgo.RateLimitError
		if !errors.As(err, &rateLimitErr) {
			return err
		}

		logger.Warn("Rate limited by Discord, waiting",
			zap.Duration("retry_after", rateLimitErr.RetryAfter))

		select {
		case <-time.After(rateLimitErr.RetryAfter):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
