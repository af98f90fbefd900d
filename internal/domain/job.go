package domain

import "time"

// Job tracks the redaction lifecycle of a single watched document. The
// filename is unique within the watch directory, so it doubles as the key.
type Job struct {
	Filename     string     `db:"filename" json:"filename"`
	Status       Status     `db:"status" json:"status"`
	ResultName   string     `db:"result_name" json:"result_name"`
	UsedOCR      bool       `db:"used_ocr" json:"used_ocr"`
	ErrorMessage string     `db:"error_message" json:"error_message"`
	ProcessedAt  *time.Time `db:"processed_at" json:"processed_at"`
}
