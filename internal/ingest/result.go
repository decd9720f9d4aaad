package ingest

// Outcome classifies what happened to one ingested message.
type Outcome int

const (
	OutcomeStored Outcome = iota
	OutcomeSkipped
	OutcomeRejected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeStored:
		return "stored"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeRejected:
		return "rejected"
	}
	return "unknown"
}

// Reason refines an Outcome. Skips are expected (filter or dedup);
// rejections are per-message failures that never abort the batch.
type Reason string

const (
	ReasonNone        Reason = ""
	ReasonNotAdmitted Reason = "not_admitted"
	ReasonDuplicate   Reason = "duplicate"
	ReasonParseError  Reason = "parse_error"
	ReasonStoreError  Reason = "store_error"
)

type Result struct {
	Outcome Outcome
	Reason  Reason
	Err     error

	// FutureWindow marks a not-admitted message from an allow-listed
	// sender whose receipt time is at or past the current window end.
	// Tomorrow's window starts before that instant, so the message will
	// be admitted then and must stay visible to the next polls.
	FutureWindow bool
}

func stored() Result {
	return Result{Outcome: OutcomeStored}
}

func skipped(reason Reason) Result {
	return Result{Outcome: OutcomeSkipped, Reason: reason}
}

func rejected(reason Reason, err error) Result {
	return Result{Outcome: OutcomeRejected, Reason: reason, Err: err}
}
