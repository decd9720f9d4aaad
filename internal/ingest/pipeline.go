package ingest

import (
	"errors"
	"sync"
	"time"

	imapclient "github.com/patoliyabhi7/BlogEmails/internal/imap"
	"github.com/patoliyabhi7/BlogEmails/internal/localtime"
	"github.com/patoliyabhi7/BlogEmails/internal/logging"
	"github.com/patoliyabhi7/BlogEmails/internal/mailparse"
	"github.com/patoliyabhi7/BlogEmails/internal/models"
	"github.com/patoliyabhi7/BlogEmails/internal/store"
	"github.com/patoliyabhi7/BlogEmails/internal/textutil"
)

// Store is the persistence capability the pipeline needs: a dedup
// lookup and an insert.
type Store interface {
	ExistsBySubject(subject string) (bool, error)
	Insert(msg *models.StoredMessage) error
}

// Pipeline decides, per fetched message, whether it gets stored:
// parse, normalize, admission filter (allow-listed sender inside the
// rolling window), dedup gate, insert.
type Pipeline struct {
	store     Store
	allowList map[string]struct{}
	now       func() time.Time

	// mu serializes the dedup check with the insert that follows it.
	// Without it two in-flight messages with the same subject could
	// both pass the lookup; the unique index in the store is the
	// backstop either way.
	mu sync.Mutex
}

// NewPipeline creates a Pipeline storing into st, admitting only the
// given sender addresses. Membership is exact and case-sensitive.
func NewPipeline(st Store, allowedSenders []string) *Pipeline {
	allowList := make(map[string]struct{}, len(allowedSenders))
	for _, sender := range allowedSenders {
		allowList[sender] = struct{}{}
	}
	return &Pipeline{
		store:     st,
		allowList: allowList,
		now:       time.Now,
	}
}

// Process fetches one message by UID and runs it through the pipeline.
// The returned error is transport-level only (fetch failed); everything
// downstream of a successful fetch is reported in the Result so one bad
// message never aborts the batch.
//
// Handled messages are flagged Seen so the next poll skips them, with
// two exceptions: a store failure leaves the flag unset so the message
// is retried on the following run, and a message received at or past
// the current window end stays unflagged because tomorrow's window
// admits it. Malformed messages are flagged Seen — reparsing them can
// never succeed, so refetching would only re-log the same failure.
func (p *Pipeline) Process(client imapclient.Client, uid uint32) (Result, error) {
	msg, err := client.FetchMessage(uid)
	if err != nil {
		return Result{}, err
	}

	email, err := mailparse.Parse(msg)
	if err != nil {
		logging.Log.WithField("trace_id", "unknown").Errorf("Error parsing email UID %d: %v", uid, err)
		p.markSeen(client, uid, "unknown")
		return rejected(ReasonParseError, err), nil
	}

	result := p.Ingest(email)

	if result.Reason != ReasonStoreError && !result.FutureWindow {
		p.markSeen(client, uid, email.TraceID)
	}

	return result, nil
}

func (p *Pipeline) markSeen(client imapclient.Client, uid uint32, traceID string) {
	if err := client.MarkSeen(uid); err != nil {
		logging.Log.WithField("trace_id", traceID).Errorf("Error marking message UID %d as seen: %v", uid, err)
	}
}

// Ingest runs an already-parsed email through normalize → admission
// filter → dedup gate → insert.
func (p *Pipeline) Ingest(email *models.Email) Result {
	locallog := logging.Log.WithField("trace_id", email.TraceID)

	if email.Subject == "" {
		locallog.Error("Message has no subject, rejecting")
		return rejected(ReasonParseError, errors.New("empty subject"))
	}

	receivedLocal, err := localtime.ToLocalOffset(email.ReceivedAt)
	if err != nil {
		// An unparseable date is treated the same as a malformed message.
		locallog.Errorf("Invalid receipt date on %q: %v", email.Subject, err)
		return rejected(ReasonParseError, err)
	}

	body := textutil.Normalize(email.BodyText)
	now := p.now()

	if !p.isAdmittedAt(email.From, receivedLocal, now) {
		locallog.Infof("Message %q from %s at %s not admitted, skip ...", email.Subject, email.From, receivedLocal)
		result := skipped(ReasonNotAdmitted)
		if _, allowed := p.allowList[email.From]; allowed {
			_, windowEnd := localtime.Window(now)
			result.FutureWindow = receivedLocal >= windowEnd
		}
		return result
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	exists, err := p.store.ExistsBySubject(email.Subject)
	if err != nil {
		locallog.Errorf("Dedup lookup failed for %q: %v", email.Subject, err)
		return rejected(ReasonStoreError, err)
	}
	if exists {
		locallog.Infof("Message %q already stored, skip ...", email.Subject)
		return skipped(ReasonDuplicate)
	}

	record := &models.StoredMessage{
		Subject:    email.Subject,
		Sender:     email.FromDisplay,
		ReceivedAt: receivedLocal,
		StorageDay: localtime.Day(now),
		Body:       body,
	}

	if err := p.store.Insert(record); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			locallog.Infof("Message %q already stored, skip ...", email.Subject)
			return skipped(ReasonDuplicate)
		}
		locallog.Errorf("Error storing message %q: %v", email.Subject, err)
		return rejected(ReasonStoreError, err)
	}

	locallog.Infof("Stored message %q under day %s", email.Subject, record.StorageDay)
	return stored()
}

// isAdmittedAt applies both admission conditions: the bare sender
// address must be allow-listed, and the local receipt time must fall in
// [yesterday 19:30:00, today 19:00:00) relative to now. The timestamps
// are fixed-width, so plain string comparison matches instant order.
func (p *Pipeline) isAdmittedAt(sender, receivedLocal string, now time.Time) bool {
	if _, ok := p.allowList[sender]; !ok {
		return false
	}

	windowStart, windowEnd := localtime.Window(now)
	return receivedLocal >= windowStart && receivedLocal < windowEnd
}
