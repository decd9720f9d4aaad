package digest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/patoliyabhi7/BlogEmails/internal/logging"
	"github.com/patoliyabhi7/BlogEmails/internal/models"
)

// ErrNoMessages reports that nothing was stored for the requested day,
// so no digest was produced and no summarization call was made.
var ErrNoMessages = errors.New("no messages stored for day")

// Store is the read side of persistence the assembler needs.
type Store interface {
	FindByDay(day string) ([]models.StoredMessage, error)
}

// Summarizer turns a prompt into generated text.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

const promptTemplate = `You are given a set of emails as title-body pairs. Each pair has the form "Title: <title> ### Body: <body> |||". Merge all of them into one coherent HTML blog post with a single <h1> title and <p> paragraphs for the content. Remove any links and copyright notices. Respond with the HTML document only.

%s`

// Assembler builds one combined payload from a day's stored messages
// and hands it to the summarizer.
type Assembler struct {
	store      Store
	summarizer Summarizer
	outputDir  string
}

// NewAssembler creates an Assembler. If outputDir is non-empty the
// generated HTML is also written to <outputDir>/<day>.html.
func NewAssembler(st Store, summarizer Summarizer, outputDir string) *Assembler {
	return &Assembler{
		store:      st,
		summarizer: summarizer,
		outputDir:  outputDir,
	}
}

// Assemble loads the day's messages, concatenates them with the fixed
// separator grammar and returns the summarizer's response verbatim. The
// response is not validated or parsed. Returns ErrNoMessages when the
// day is empty; a summarizer failure is propagated without retry.
func (a *Assembler) Assemble(ctx context.Context, day string) (string, error) {
	messages, err := a.store.FindByDay(day)
	if err != nil {
		return "", fmt.Errorf("error loading messages for digest: %w", err)
	}

	if len(messages) == 0 {
		return "", ErrNoMessages
	}

	parts := make([]string, 0, len(messages))
	for _, msg := range messages {
		parts = append(parts, fmt.Sprintf("Title: %s ### Body: %s ||| ", msg.Subject, msg.Body))
	}
	payload := strings.Join(parts, "\n\n")

	html, err := a.summarizer.Summarize(ctx, fmt.Sprintf(promptTemplate, payload))
	if err != nil {
		return "", fmt.Errorf("summarization failed: %w", err)
	}

	logging.Log.Infof("Assembled digest for %s from %d messages", day, len(messages))

	if a.outputDir != "" {
		if err := a.writeOutput(day, html); err != nil {
			logging.Log.Errorf("Error writing digest file for %s: %v", day, err)
		}
	}

	return html, nil
}

func (a *Assembler) writeOutput(day, html string) error {
	if err := os.MkdirAll(a.outputDir, 0o755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	path := filepath.Join(a.outputDir, day+".html")
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("error writing digest file: %w", err)
	}
	return nil
}
