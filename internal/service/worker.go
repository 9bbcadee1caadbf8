package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/rs/zerolog"

	"github.com/unclebandit/campaign-builder/internal/metrics"
	"github.com/unclebandit/campaign-builder/internal/model"
	"github.com/unclebandit/campaign-builder/internal/repository"
)

// DeliveryRecorder stores the outcome of each send.
type DeliveryRecorder interface {
	Record(ctx context.Context, d *model.Delivery) error
}

// SendFunc hands one rendered message to a transport.
type SendFunc func(ch model.Channel, contact *model.Contact, text string) error

// Worker turns handed-off drafts into per contact, per channel deliveries.
type Worker struct {
	Directory  repository.ContactDirectory
	Deliveries DeliveryRecorder
	Send       SendFunc
	BrandName  string
	Logger     zerolog.Logger
}

type DeliveryReport struct {
	DraftID   string `json:"draft_id"`
	Attempted int    `json:"attempted"`
	Sent      int    `json:"sent"`
	Failed    int    `json:"failed"`
	Skipped   int    `json:"skipped"`
}

// Constructor
func NewWorker(dir repository.ContactDirectory, deliveries DeliveryRecorder, send SendFunc, log zerolog.Logger) *Worker {
	return &Worker{
		Directory:  dir,
		Deliveries: deliveries,
		Send:       send,
		Logger:     log,
	}
}

// Process sends every (contact, channel) pair of the snapshot. Send and
// lookup failures are counted per contact and never abort the fan-out, so a
// retried event cannot resend pairs that already went out. It only fails
// when ctx is done before anything was sent.
func (w *Worker) Process(ctx context.Context, ev model.HandoffEvent) (DeliveryReport, error) {
	snap := ev.Data
	report := DeliveryReport{DraftID: snap.ID}
	if err := ctx.Err(); err != nil {
		return report, err
	}

	for _, contactID := range snap.Contacts {
		contact, err := w.Directory.GetContact(ctx, contactID)
		if err != nil {
			w.Logger.Error().Err(err).Str("draft_id", snap.ID).Str("contact_id", contactID).Msg("contact lookup failed, skipping")
			report.Skipped += len(snap.Channels)
			continue
		}
		if contact == nil {
			w.Logger.Warn().Str("contact_id", contactID).Msg("contact not in directory, skipping")
			report.Skipped += len(snap.Channels)
			continue
		}

		for _, ch := range snap.Channels {
			report.Attempted++
			text := w.render(snapshotMessage(snap, ch).Text, contact)
			d := &model.Delivery{
				DraftID:         snap.ID,
				ContactID:       contact.ID,
				Channel:         ch,
				Status:          "sent",
				RenderedContent: text,
			}
			if err := w.Send(ch, contact, text); err != nil {
				d.Status = "failed"
				d.LastError = err.Error()
				report.Failed++
			} else {
				report.Sent++
			}
			metrics.Deliveries.WithLabelValues(string(ch), d.Status).Inc()
			if w.Deliveries != nil {
				if err := w.Deliveries.Record(ctx, d); err != nil {
					w.Logger.Error().Err(err).Str("contact_id", contact.ID).Str("channel", string(ch)).Msg("failed to record delivery")
				}
			}
		}
	}

	w.Logger.Info().
		Str("draft_id", snap.ID).
		Int("attempted", report.Attempted).
		Int("sent", report.Sent).
		Int("failed", report.Failed).
		Int("skipped", report.Skipped).
		Msg("handoff processed")
	return report, nil
}

// Start processes handoffs until jobs is closed.
func (w *Worker) Start(ctx context.Context, jobs <-chan model.HandoffEvent) {
	for ev := range jobs {
		if _, err := w.Process(ctx, ev); err != nil {
			w.Logger.Error().Err(err).Str("draft_id", ev.Data.ID).Msg("handoff failed")
		}
	}
}

func (w *Worker) render(text string, c *model.Contact) string {
	first := c.Name
	if i := strings.IndexByte(first, ' '); i > 0 {
		first = first[:i]
	}
	brand := w.BrandName
	if brand == "" {
		brand = "Our"
	}
	return RenderTemplate(text, map[string]string{
		"FirstName": first,
		"Name":      c.Name,
		"BrandName": brand,
	})
}

func snapshotMessage(s model.DraftSnapshot, ch model.Channel) model.ChannelMessage {
	if m, ok := s.ChannelMessages[ch]; ok && (m.Text != "" || len(m.Images) > 0) {
		return m
	}
	return s.Message
}

// MockSender succeeds 90% of the time.
func MockSender(ch model.Channel, contact *model.Contact, text string) error {
	if rand.Float64() < 0.9 {
		return nil
	}
	return fmt.Errorf("mock %s send to %s failed", ch, contact.ID)
}
