package cli

import (
	"fmt"
	"strings"
)

// OCRAdvisory is shown whenever the service reports that it fell back to
// OCR for a document.
const OCRAdvisory = "OCR was used to process this PDF. Redaction accuracy may be reduced."

// Render draws the whole screen for a state. It is a pure function of its
// argument, so every surface combination stays testable without a terminal.
func Render(s State) string {
	var b strings.Builder

	if s.Selected != "" {
		fmt.Fprintf(&b, "Selected file: %s\n", s.Selected)
	} else {
		b.WriteString("Selected file: none\n")
	}

	if s.InFlight {
		b.WriteString("[ Start Redaction ] (disabled) Processing...\n")
	} else {
		b.WriteString("[ Start Redaction ]\n")
	}

	if s.ResultURL != "" {
		b.WriteString("PDF redacted successfully.\n")
		fmt.Fprintf(&b, "Download Redacted PDF: %s\n", s.ResultURL)

		if s.UsedOCR {
			b.WriteString(OCRAdvisory + "\n")
		}
	}

	if s.Notice != "" {
		fmt.Fprintf(&b, "%s\n", s.Notice)
	}

	return b.String()
}
