package discord

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/goodsign/monday"
	"go.uber.org/zap"

	"slackcord/internal/export"
	"slackcord/internal/relay"
)

const commandName = "slackcord"

// Bot owns the Discord gateway session and the replay command surface.
// The /slackcord command posts all parsed messages into the channel it
// was invoked from. Parsing and delivery are mutually exclusive: loading
// a new message list and a delivery pass both hold the same lock, and a
// second command issued while posting is rejected.
type Bot struct {
	session *discordgo.Session
	driver  *relay.Driver
	client  *Client
	logger  *zap.Logger
	locale  monday.Locale

	mu       sync.Mutex
	messages []export.Message
}

// NewBot creates a bot for the given token. The session is configured
// but not connected; call Start to open the gateway.
func NewBot(token string, driver *relay.Driver, locale monday.Locale, logger *zap.Logger) (*Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("discord bot token is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages
	// Rate-limit waits are handled in the client so they are logged and
	// context-aware.
	session.ShouldRetryOnRateLimit = false

	b := &Bot{
		session: session,
		driver:  driver,
		client:  NewClient(session, logger),
		logger:  logger,
		locale:  locale,
	}
	session.AddHandler(b.onReady)
	session.AddHandler(b.onInteraction)
	return b, nil
}

// SetMessages installs the parsed message list the next replay will
// deliver. It blocks while a delivery pass is in progress.
func (b *Bot) SetMessages(msgs []export.Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = msgs
}

// Start opens the gateway connection.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("connect to discord gateway: %w", err)
	}
	return nil
}

// Close shuts down the gateway connection.
func (b *Bot) Close() error {
	return b.session.Close()
}

// onReady registers the guild command and sets the idle presence.
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.logger.Info("Discord gateway ready",
		zap.String("user", r.User.Username),
		zap.Int("guilds", len(r.Guilds)))

	cmd := &discordgo.ApplicationCommand{
		Name:        commandName,
		Description: "Posts all parsed Slack messages to the text channel the command came from.",
	}
	for _, g := range r.Guilds {
		if _, err := s.ApplicationCommandCreate(s.State.User.ID, g.ID, cmd); err != nil {
			b.logger.Error("Failed to register command",
				zap.String("guild", g.ID),
				zap.Error(err))
		}
	}

	b.setStatus("for the /slackcord command...")
}

// onInteraction handles a /slackcord invocation.
func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	if i.ApplicationCommandData().Name != commandName {
		return
	}

	if !b.mu.TryLock() {
		b.respond(i, "A transfer is already in progress. Try again when it finishes.")
		return
	}
	defer b.mu.Unlock()

	if len(b.messages) == 0 {
		b.respond(i, "Sorry, there's nothing to post because no export file was parsed prior to sending this command.")
		b.logger.Warn("Replay requested but nothing was parsed",
			zap.String("channel", i.ChannelID))
		return
	}

	b.respond(i, fmt.Sprintf("Beginning transfer of %d messages...", len(b.messages)))
	b.setStatus("posting messages...")
	defer b.setStatus("for the /slackcord command...")

	sum, err := b.driver.Run(context.Background(), b.client, i.ChannelID, b.messages, b.locale)
	if err != nil {
		b.logger.Error("Replay finished with failures",
			zap.Int("parts_failed", sum.PartsFailed),
			zap.Error(err))
		return
	}

	b.logger.Info("Replay delivered",
		zap.String("channel", i.ChannelID),
		zap.Int("parts_sent", sum.PartsSent),
		zap.Int("threads_opened", sum.ThreadsOpened))
}

// respond acknowledges an interaction with a short notice.
func (b *Bot) respond(i *discordgo.InteractionCreate, content string) {
	err := b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
	if err != nil {
		b.logger.Error("Failed to respond to interaction", zap.Error(err))
	}
}

// setStatus updates the bot's watch presence, best-effort.
func (b *Bot) setStatus(activity string) {
	if err := b.session.UpdateWatchStatus(0, activity); err != nil {
		b.logger.Debug("Failed to update presence", zap.Error(err))
	}
}
