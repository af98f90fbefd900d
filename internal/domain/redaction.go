package domain

import (
	"time"

	"github.com/google/uuid"
)

// Redaction is a single produced artifact: the service accepted Filename
// and published ResultName for download.
type Redaction struct {
	ID          uuid.UUID `csv:"id"           db:"id"           json:"id"`
	Filename    string    `csv:"filename"     db:"filename"     json:"filename"`
	ResultName  string    `csv:"result_name"  db:"result_name"  json:"result_name"`
	UsedOCR     bool      `csv:"used_ocr"     db:"used_ocr"     json:"used_ocr"`
	ProcessedAt time.Time `csv:"processed_at" db:"processed_at" json:"processed_at"`
}
