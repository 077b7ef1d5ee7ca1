package constants

// JobStatus is the lifecycle of a queued extraction.
type JobStatus string

const (
	JobStatusQueued  JobStatus = "QUEUED"
	JobStatusRunning JobStatus = "RUNNING"
	JobStatusDone    JobStatus = "DONE"
	JobStatusFailed  JobStatus = "FAILED"
)

// OutcomeStatus classifies one processed document.
type OutcomeStatus string

const (
	OutcomeOK        OutcomeStatus = "OK"        // all review rules passed
	OutcomeReview    OutcomeStatus = "REVIEW"    // extracted, needs a human look
	OutcomeFailed    OutcomeStatus = "FAILED"    // text layer could not be acquired
	OutcomeDuplicate OutcomeStatus = "DUPLICATE" // barcode already seen in this batch
)
