package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSender struct {
	sent []struct{ to, subject, body string }
	err  error
}

func (s *stubSender) Send(to, subject, body string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, struct{ to, subject, body string }{to, subject, body})
	return nil
}

func alertPayload(t *testing.T) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(LowStockAlertPayload{
		ProductID:     3,
		ProductName:   "Rice 5kg",
		ProductCode:   "GR-0001",
		StockQuantity: 2,
		MinStockLevel: 10,
	})
	require.NoError(t, err)
	return raw
}

func TestAlertWorkerSendsMail(t *testing.T) {
	sender := &stubSender{}
	w := NewAlertWorker(sender, "ops@stocktracker.local")

	require.NoError(t, w.Process(context.Background(), alertPayload(t)))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "ops@stocktracker.local", sender.sent[0].to)
	assert.Contains(t, sender.sent[0].subject, "GR-0001")
	assert.Contains(t, sender.sent[0].body, "2 units")
}

func TestAlertWorkerDropsMalformedPayload(t *testing.T) {
	sender := &stubSender{}
	w := NewAlertWorker(sender, "ops@stocktracker.local")

	// invalid payloads are dropped, never retried into the DLQ
	assert.NoError(t, w.Process(context.Background(), json.RawMessage(`{broken`)))
	assert.Empty(t, sender.sent)
}

func TestAlertWorkerSkipsWithoutRecipient(t *testing.T) {
	sender := &stubSender{}
	w := NewAlertWorker(sender, "")

	assert.NoError(t, w.Process(context.Background(), alertPayload(t)))
	assert.Empty(t, sender.sent)
}

func TestAlertWorkerPropagatesSendFailure(t *testing.T) {
	sender := &stubSender{err: errors.New("smtp unreachable")}
	w := NewAlertWorker(sender, "ops@stocktracker.local")

	// a returned error is what routes the job to the DLQ
	assert.Error(t, w.Process(context.Background(), alertPayload(t)))
}
