package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// CorruptFileError marks an export file whose JSON could not be parsed.
// The file is skipped as a whole; the batch continues with the next file.
type CorruptFileError struct {
	Path string
	Err  error
}

func (e *CorruptFileError) Error() string {
	return fmt.Sprintf("corrupt export file %s: %v", e.Path, e.Err)
}

func (e *CorruptFileError) Unwrap() error {
	return e.Err
}

// Summary reports what a parse pass did, for the operator.
type Summary struct {
	FilesParsed int
	FilesFailed int
	Records     int
	Messages    int
	Ignored     int
	Degraded    int
	Failures    []error
}

// Parser turns a directory of Slack export files into an ordered message
// list. Parsing is synchronous and file-at-a-time.
type Parser struct {
	users  *UserTable
	logger *zap.Logger
}

// NewParser creates a parser resolving identities against the given table.
func NewParser(users *UserTable, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	if users == nil {
		users = &UserTable{users: make(map[string]User)}
	}
	return &Parser{users: users, logger: logger}
}

// ParseDir reads every .json file in dir in name order (Slack exports are
// date-named, so name order is chronological order) and returns the
// ordered messages plus a summary. Only an unreadable directory is fatal;
// a corrupt file degrades the run, it does not abort it.
func (p *Parser) ParseDir(dir string) ([]Message, Summary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("read export directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	var (
		messages []Message
		sum      Summary
	)
	for _, path := range paths {
		msgs, err := p.parseFile(path, &sum)
		if err != nil {
			sum.FilesFailed++
			sum.Failures = append(sum.Failures, err)
			p.logger.Error("Skipping corrupt export file",
				zap.String("file", path),
				zap.Error(err))
			continue
		}
		sum.FilesParsed++
		messages = append(messages, msgs...)
	}
	sum.Messages = len(messages)

	p.logger.Info("Parse pass complete",
		zap.Int("files_parsed", sum.FilesParsed),
		zap.Int("files_failed", sum.FilesFailed),
		zap.Int("records", sum.Records),
		zap.Int("messages", sum.Messages),
		zap.Int("ignored", sum.Ignored),
		zap.Int("degraded", sum.Degraded))

	return messages, sum, nil
}

// parseFile parses one export file into messages in record order.
func (p *Parser) parseFile(path string, sum *Summary) ([]Message, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &CorruptFileError{Path: path, Err: err}
	}

	var records []*Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &CorruptFileError{Path: path, Err: err}
	}

	messages := make([]Message, 0, len(records))
	for i, rec := range records {
		sum.Records++

		cls := Classify(rec)
		if cls.Kind == KindIgnorable {
			sum.Ignored++
			p.logger.Debug("Ignoring record with no recognizable shape",
				zap.String("file", path),
				zap.Int("index", i))
			continue
		}

		msg, note := Normalize(rec, cls, p.users)
		if note != "" {
			sum.Degraded++
			p.logger.Warn("Record degraded to placeholder content",
				zap.String("file", path),
				zap.Int("index", i),
				zap.String("reason", note))
		}
		messages = append(messages, msg)
	}

	p.logger.Info("Parsed export file",
		zap.String("file", path),
		zap.Int("messages", len(messages)))

	return messages, nil
}
