package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/goodsign/monday"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"slackcord/internal/config"
	"slackcord/internal/discord"
	"slackcord/internal/export"
	"slackcord/internal/relay"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "slackcord",
	Short: "Replay a Slack export into a Discord channel",
	Long: `slackcord parses a Slack chat-history export and replays it into a
Discord channel, preserving order and thread structure.

Place the export's JSON files in the files folder, then run slackcord and
issue /slackcord in the target Discord channel. With --dry-run the parsed
messages are rendered to a local transcript and Discord is never contacted.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	flags := rootCmd.Flags()
	flags.String("token", "", "Discord bot token (prompted and saved when omitted)")
	flags.String("files-folder", "Files", "folder containing the Slack export JSON files")
	flags.String("users-file", "", "users.json from the Slack export (authoritative identity table)")
	flags.String("locale", "en-US", "locale used to format dates and times")
	flags.Bool("dry-run", false, "parse and render without contacting Discord")
	flags.String("transcript", "transcript.txt", "output file for --dry-run")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := initLogger(cfg.LogLevel, cfg.LogDir)
	if err != nil {
		return err
	}
	defer logger.Sync()

	users, err := export.LoadUsers(cfg.UsersFile)
	if err != nil {
		return err
	}
	if users.Size() > 0 {
		logger.Info("Loaded identity table", zap.Int("users", users.Size()))
	}

	messages, sum, err := parseWithRetry(cfg.FilesDir, users, logger)
	if err != nil {
		return err
	}
	for _, failure := range sum.Failures {
		fmt.Fprintln(os.Stderr, "Warning:", failure)
	}
	fmt.Printf("Parsed %d records from %d files: %d messages queued, %d ignored, %d degraded, %d files failed.\n",
		sum.Records, sum.FilesParsed, sum.Messages, sum.Ignored, sum.Degraded, sum.FilesFailed)

	locale := export.ParseLocale(cfg.Locale)
	driver := relay.NewDriver(relay.DefaultSplitPolicy(), logger)

	if cfg.DryRun {
		return dryRun(cfg.Transcript, driver, messages, locale, logger)
	}

	token := cfg.Token
	if token == "" {
		token, err = promptToken()
		if err != nil {
			return err
		}
		if err := config.SaveToken(token); err != nil {
			logger.Warn("Could not persist bot token", zap.Error(err))
		}
	}

	bot, err := discord.NewBot(token, driver, locale, logger)
	if err != nil {
		return err
	}
	bot.SetMessages(messages)

	fmt.Println("Connecting to Discord...")
	if err := bot.Start(); err != nil {
		return err
	}
	defer bot.Close()

	fmt.Println("Connected. Issue /slackcord in the target channel to begin the transfer. Ctrl-C to quit.")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	fmt.Println("Shutting down.")
	return nil
}

// parseWithRetry parses the files folder, prompting the operator to add
// files and press ENTER when the folder is empty.
func parseWithRetry(dir string, users *export.UserTable, logger *zap.Logger) ([]export.Message, export.Summary, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, export.Summary{}, fmt.Errorf("create files folder: %w", err)
	}

	stdin := bufio.NewReader(os.Stdin)
	parser := export.NewParser(users, logger)

	for {
		messages, sum, err := parser.ParseDir(dir)
		if err != nil {
			return nil, sum, err
		}
		if sum.FilesParsed > 0 || sum.FilesFailed > 0 {
			return messages, sum, nil
		}

		fmt.Printf("No JSON files found in %s.\nPlace your export files there, then press ENTER to scan again.\n", dir)
		if _, err := stdin.ReadString('\n'); err != nil {
			return nil, sum, fmt.Errorf("read input: %w", err)
		}
	}
}

// dryRun replays into a local transcript file instead of Discord.
func dryRun(path string, driver *relay.Driver, messages []export.Message, locale monday.Locale, logger *zap.Logger) error {
	transcript, err := relay.NewTranscript(path)
	if err != nil {
		return err
	}

	sum, runErr := driver.Run(context.Background(), transcript, "dry-run", messages, locale)
	if closeErr := transcript.Close(); closeErr != nil {
		logger.Warn("Could not close transcript", zap.Error(closeErr))
	}
	if runErr != nil {
		return runErr
	}

	fmt.Printf("Dry run complete: %d parts written to %s (%d threads, %d truncated).\n",
		sum.PartsSent, path, sum.ThreadsOpened, sum.Truncated)
	return nil
}

func promptToken() (string, error) {
	fmt.Print("No bot token found. Please enter your bot token: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	token := strings.TrimSpace(line)
	if token == "" {
		return "", fmt.Errorf("no token entered")
	}
	return token, nil
}

// initLogger builds a production logger writing to stderr and a dated
// file under the log directory.
func initLogger(level string, logDir string) (*zap.Logger, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	logFileName := fmt.Sprintf("slackcord-%s.log", time.Now().Format("2006-01-02"))
	logFile, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	logLevel := interpretLogLevel(level)
	stderrCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(os.Stderr),
		logLevel,
	)
	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logFile),
		logLevel,
	)

	return zap.New(zapcore.NewTee(stderrCore, fileCore), zap.AddCaller()), nil
}

func interpretLogLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
