package worker

// alert_worker.go
// Processes low-stock alert jobs from QueueAlerts: formats and mails a
// restock notice to the configured recipient.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Sender delivers a plain-text message. infra.Mailer satisfies it.
type Sender interface {
	Send(to, subject, body string) error
}

// AlertWorker sends low-stock notification emails via SMTP.
type AlertWorker struct {
	mailer    Sender
	recipient string
}

func NewAlertWorker(mailer Sender, recipient string) *AlertWorker {
	return &AlertWorker{mailer: mailer, recipient: recipient}
}

// Process sends one alert email. A returned error sends the job to the DLQ.
func (w *AlertWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload LowStockAlertPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alert_worker: invalid payload")
		return nil // malformed jobs are dropped, not retried
	}
	if w.recipient == "" {
		log.Warn().Msg("alert_worker: no ALERT_RECIPIENT configured — skipping")
		return nil
	}

	subject := fmt.Sprintf("Low stock: %s (%s)", payload.ProductName, payload.ProductCode)
	body := fmt.Sprintf(
		"Product %s (%s) is down to %d units, below its minimum stock level of %d.\nConsider recording a purchase.",
		payload.ProductName, payload.ProductCode, payload.StockQuantity, payload.MinStockLevel,
	)

	if err := w.mailer.Send(w.recipient, subject, body); err != nil {
		log.Error().Err(err).Str("product", payload.ProductCode).Msg("alert_worker: failed to send email")
		return err
	}
	log.Info().Str("product", payload.ProductCode).Int("quantity", payload.StockQuantity).Msg("alert_worker: low stock alert sent")
	return nil
}
