package domain

// Status is the redaction lifecycle of a watched document. A job enters as
// pending, is flipped to processing when queued for upload, and settles as
// done or error. Interrupted runs reset processing back to pending on start.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusDone       Status = "done"
	StatusError      Status = "error"
)
