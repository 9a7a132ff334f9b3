package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"nailpos/internal/dto"
	"nailpos/internal/infra"

	"github.com/rs/zerolog/log"
)

// StockAlertPayload is the job sent to QueueStockAlert, one per tenant.
type StockAlertPayload struct {
	TenantID string             `json:"tenant_id"`
	To       string             `json:"to"`
	Items    []dto.LowStockItem `json:"items"`
}

// Sender is satisfied by *infra.Mailer.
type Sender interface {
	Configured() bool
	Send(to, subject, body string) error
}

// StockAlertWorker mails the low-stock list of one tenant.
type StockAlertWorker struct {
	mailer Sender
	cb     *infra.CircuitBreaker
}

func NewStockAlertWorker(mailer Sender, cb *infra.CircuitBreaker) *StockAlertWorker {
	return &StockAlertWorker{mailer: mailer, cb: cb}
}

func (w *StockAlertWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload StockAlertPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Permanent(fmt.Errorf("stock_alert: invalid payload: %w", err))
	}
	if payload.To == "" || len(payload.Items) == 0 {
		log.Warn().Str("tenant", payload.TenantID).Msg("stock_alert: nothing to send, skipping")
		return nil
	}
	if !w.mailer.Configured() {
		log.Warn().Str("tenant", payload.TenantID).Msg("stock_alert: SMTP not configured, skipping")
		return nil
	}

	subject := fmt.Sprintf("Low stock: %d item(s)", len(payload.Items))
	body := renderStockAlert(payload)

	err := w.cb.Execute(func() error {
		return w.mailer.Send(payload.To, subject, body)
	})
	if errors.Is(err, infra.ErrCircuitOpen) {
		log.Debug().Str("tenant", payload.TenantID).Msg("stock_alert: mail circuit open")
	}
	if err != nil {
		return err
	}
	log.Info().Str("tenant", payload.TenantID).Str("to", payload.To).Int("items", len(payload.Items)).Msg("stock_alert: sent")
	return nil
}

func renderStockAlert(p StockAlertPayload) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tenant %s has %d item(s) below their alert threshold:\n\n", p.TenantID, len(p.Items))
	for _, it := range p.Items {
		fmt.Fprintf(&b, "  [%s] %s: %d left (threshold %d)\n", it.Kind, it.Name, it.Stock, it.Threshold)
	}
	return b.String()
}
