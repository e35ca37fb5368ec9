package relay

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sync"
)

// Transcript is a Messenger that writes every part to a local file
// instead of a destination API. It backs the simulate mode: parsing and
// rendering run in full, no network call is made. Message and thread IDs
// are synthesized so thread routing still exercises the same paths.
type Transcript struct {
	mu      sync.Mutex
	file    *os.File
	bw      *bufio.Writer
	nextID  int
	parts   int
	threads int
}

// NewTranscript creates a transcript writing to the given path.
func NewTranscript(path string) (*Transcript, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create transcript file: %w", err)
	}
	return &Transcript{file: file, bw: bufio.NewWriter(file)}, nil
}

// SendText records a part in the transcript and returns a synthetic
// message ID.
func (t *Transcript) SendText(_ context.Context, channelID, text string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	t.parts++
	id := fmt.Sprintf("sim-%d", t.nextID)
	if _, err := fmt.Fprintf(t.bw, "[%s] %s\n", channelID, text); err != nil {
		return "", err
	}
	return id, nil
}

// CreateThread records the thread in the transcript and returns a
// synthetic thread channel ID.
func (t *Transcript) CreateThread(_ context.Context, channelID, messageID, name string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.threads++
	id := fmt.Sprintf("sim-thread-%d", t.threads)
	if _, err := fmt.Fprintf(t.bw, "[%s] --- thread %q anchored at %s ---\n", channelID, name, messageID); err != nil {
		return "", err
	}
	return id, nil
}

// Close flushes and closes the transcript file.
func (t *Transcript) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.bw.Flush(); err != nil {
		t.file.Close()
		return fmt.Errorf("flush transcript: %w", err)
	}
	return t.file.Close()
}

// Parts returns the number of parts recorded.
func (t *Transcript) Parts() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.parts
}
