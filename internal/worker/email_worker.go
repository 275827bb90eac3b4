package worker

// email_worker.go
// Processes notification jobs from QueueEmail: cuadre verifications and
// overdue-invoice reminders, with an optional PDF attachment.

import (
	"context"
	"encoding/json"
	"fmt"

	"rapifarma/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path"`
}

// EmailWorker processes notification jobs from QueueEmail via SMTP.
type EmailWorker struct {
	mailer *infra.Mailer
	// fallbackTo receives notifications that carry no recipient
	fallbackTo string
}

// NewEmailWorker creates an EmailWorker with the provided SMTP mailer.
func NewEmailWorker(mailer *infra.Mailer, fallbackTo string) *EmailWorker {
	return &EmailWorker{mailer: mailer, fallbackTo: fallbackTo}
}

// Process sends one notification email. A returned error re-enqueues the job
// until the retry budget moves it to the DLQ.
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return nil // no point retrying a malformed payload
	}

	to := payload.ToEmail
	if to == "" {
		to = w.fallbackTo
	}
	if to == "" {
		log.Warn().Msg("email_worker: no recipient — skipping")
		return nil
	}

	if err := w.mailer.Send(to, payload.Subject, payload.Body, payload.PDFPath); err != nil {
		return fmt.Errorf("email_worker: send to %s: %w", to, err)
	}
	log.Info().Str("to", to).Str("subject", payload.Subject).Msg("email_worker: notification sent")
	return nil
}
