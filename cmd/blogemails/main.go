package main

import (
	"context"
	"errors"
	"flag"
	"sync/atomic"
	"time"

	"github.com/patoliyabhi7/BlogEmails/internal/config"
	"github.com/patoliyabhi7/BlogEmails/internal/digest"
	"github.com/patoliyabhi7/BlogEmails/internal/gemini"
	imapclient "github.com/patoliyabhi7/BlogEmails/internal/imap"
	"github.com/patoliyabhi7/BlogEmails/internal/ingest"
	"github.com/patoliyabhi7/BlogEmails/internal/localtime"
	"github.com/patoliyabhi7/BlogEmails/internal/logging"
	"github.com/patoliyabhi7/BlogEmails/internal/models"
	"github.com/patoliyabhi7/BlogEmails/internal/store"

	"github.com/joho/godotenv"
)

var imapFailureCount atomic.Int32

const (
	failureSleepDuration = 30 * time.Minute
	// searchLookback covers the full 23.5h admission window with slack;
	// the filter rejects anything outside it anyway.
	searchLookback = 48 * time.Hour
	digestTimeout  = 2 * time.Minute
)

func main() {
	var confPath string
	flag.StringVar(&confPath, "conf", "./config.yaml", "Path to the configuration file")
	flag.Parse()

	// Secrets come from the environment; a local .env is optional.
	_ = godotenv.Load()

	cfg, err := config.Load(confPath)
	if err != nil {
		logging.Log.Fatalf("Error reading configuration file: %v", err)
	}

	st, err := store.Open(cfg.Database.DSN)
	if err != nil {
		logging.Log.Fatalf("Error opening database: %v", err)
	}

	pipeline := ingest.NewPipeline(st, cfg.AllowedSenders)
	summarizer := gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model)
	assembler := digest.NewAssembler(st, summarizer, cfg.Digest.OutputDir)

	logging.Log.Infof("Starting blog email ingestion, refresh every %s, digest after %s", cfg.Email.RefreshTime, cfg.Digest.RunAt)

	lastDigestDay := ""
	for {
		fetchAndIngestEmails(cfg, pipeline)
		lastDigestDay = maybeRunDigest(assembler, cfg.Digest.RunAt, lastDigestDay)
		time.Sleep(cfg.Email.RefreshTime)
	}
}

// fetchAndIngestEmails connects to the IMAP server, retrieves recent emails, and runs each through the ingestion pipeline
func fetchAndIngestEmails(cfg *models.Config, pipeline *ingest.Pipeline) {
	client := imapclient.NewStandardClient()

	// Connect
	if err := client.Connect(cfg.Email.Imap); err != nil {
		handleIMAPFailure(err)
		return
	}
	defer func(client *imapclient.StandardClient) {
		_ = client.Close()
	}(client)

	// Reset failure count on successful connection
	imapFailureCount.Store(0)

	// Login
	if err := client.Login(cfg.Email.Login, cfg.Email.Password); err != nil {
		logging.Log.Errorf("Login error: %v", err)
		return
	}

	// Select mailbox
	if err := client.SelectMailbox(cfg.Email.MailBox); err != nil {
		logging.Log.Errorf("Folder selection error: %v", err)
		return
	}

	uids, err := client.ListRecentUIDs(searchLookback)
	if err != nil {
		logging.Log.Errorf("Error searching for recent emails: %v", err)
		return
	}

	if len(uids) == 0 {
		return
	}

	// Process all fetched emails; a failure on one never stops the batch
	for _, uid := range uids {
		if _, err := pipeline.Process(client, uid); err != nil {
			logging.Log.Errorf("Error processing email UID %d: %v", uid, err)
		}
	}
}

// maybeRunDigest assembles the digest once per local day, the first
// time the loop comes around after the configured wall-clock time.
func maybeRunDigest(assembler *digest.Assembler, runAt, lastDay string) string {
	now := time.Now().In(localtime.Location)
	day := now.Format(localtime.DayLayout)

	if day == lastDay || now.Format("15:04") < runAt {
		return lastDay
	}

	ctx, cancel := context.WithTimeout(context.Background(), digestTimeout)
	defer cancel()

	if _, err := assembler.Assemble(ctx, day); err != nil {
		if errors.Is(err, digest.ErrNoMessages) {
			logging.Log.Infof("No messages stored for %s, skipping digest", day)
		} else {
			logging.Log.Errorf("Error assembling digest for %s: %v", day, err)
		}
	}

	return day
}

// handleIMAPFailure increments the failure count and implements an exponential backoff strategy
func handleIMAPFailure(err error) {
	failures := imapFailureCount.Add(1)
	logging.Log.Errorf("IMAP connection error: %v", err)

	if failures >= 5 {
		base := 5 * time.Minute
		maxSteps := int32(10)

		n := failures - 5
		if n > maxSteps {
			n = maxSteps
		}

		backoff := base * time.Duration(1<<n)
		if backoff > failureSleepDuration {
			backoff = failureSleepDuration
		}

		logging.Log.Warnf("IMAP failed %d times, waiting %s before next attempt", failures, backoff)
		time.Sleep(backoff)
	}
}
