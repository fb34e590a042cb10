// internal/mail/dispatcher.go
package mail

import (
	"context"
	"strings"

	"github.com/ownthedoge/dogeday/internal/metrics"
	"github.com/ownthedoge/dogeday/internal/signup"
	"go.uber.org/zap"
)

// Outcome classifies a dispatch attempt. Skipped is distinct from Sent so an
// unconfigured environment is visible in logs and metrics even though the
// HTTP response stays 200.
type Outcome string

const (
	OutcomeSent    Outcome = "sent"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// Routing holds the operator-configured recipient addresses.
type Routing struct {
	// To is the default recipient list (comma-separated).
	To string

	// Cc is added when the submission expresses sponsor interest
	// (comma-separated, optional).
	Cc string

	// VIPTo replaces To when the submission expresses VIP interest
	// (optional; falls back to To when unset).
	VIPTo string
}

// Dispatcher routes a formatted notification to the right recipients and
// attempts exactly one send. No retry, no queue: at-most-once delivery with
// the transport response as the only confirmation.
type Dispatcher struct {
	sender  Sender
	routing Routing
	logger  *zap.Logger
}

// NewDispatcher builds a dispatcher for the given transport config. When the
// transport is unconfigured (missing host, user, or credential) the
// dispatcher is created without a sender and every Dispatch is a logged skip.
func NewDispatcher(cfg Config, routing Routing, logger *zap.Logger) *Dispatcher {
	d := &Dispatcher{routing: routing, logger: logger}
	if d.logger == nil {
		d.logger = zap.NewNop()
	}
	if cfg.Configured() {
		d.sender = NewSMTPSender(cfg)
	}
	return d
}

// NewDispatcherWithSender builds a dispatcher around an existing sender.
// Used by tests to substitute a fake transport.
func NewDispatcherWithSender(sender Sender, routing Routing, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{sender: sender, routing: routing, logger: logger}
}

// Dispatch sends the notification for a validated submission. The effective
// variant picks the recipients: VIP redirects to the VIP address, sponsor
// keeps the default recipient and adds the CC list.
//
// Returns the outcome and, for OutcomeFailed, the transport error. Callers
// decide what to surface to the end user; the chosen policy is to report
// success regardless and rely on the log/metric trail (the submitter already
// did their part, and the notification channel is non-critical).
func (d *Dispatcher) Dispatch(ctx context.Context, sub *signup.Submission, msg signup.Message, att *signup.Attachment) (Outcome, error) {
	variant := sub.EffectiveVariant()

	to := splitAddrs(d.routing.To)
	var cc []string
	switch variant {
	case signup.VariantVIP:
		if vip := splitAddrs(d.routing.VIPTo); len(vip) > 0 {
			to = vip
		}
	case signup.VariantSponsor:
		cc = splitAddrs(d.routing.Cc)
	}

	if d.sender == nil || len(to) == 0 {
		d.logger.Info("dispatch skipped; mail transport not configured",
			zap.String("variant", variant),
			zap.String("subject", msg.Subject),
		)
		metrics.ObserveDispatch(string(OutcomeSkipped))
		return OutcomeSkipped, nil
	}

	out := Message{
		To:       to,
		Cc:       cc,
		Subject:  msg.Subject,
		TextBody: msg.Body,
	}
	if att != nil {
		out.Attachments = append(out.Attachments, Attachment{
			Filename:    att.Filename,
			ContentType: att.ContentType,
			Data:        att.Data,
		})
	}

	if err := d.sender.Send(ctx, out); err != nil {
		d.logger.Error("dispatch failed",
			zap.String("variant", variant),
			zap.String("subject", msg.Subject),
			zap.Strings("to", to),
			zap.Error(err),
		)
		metrics.ObserveDispatch(string(OutcomeFailed))
		return OutcomeFailed, err
	}

	d.logger.Info("dispatch sent",
		zap.String("variant", variant),
		zap.String("subject", msg.Subject),
		zap.Strings("to", to),
		zap.Int("cc", len(cc)),
		zap.Bool("attachment", att != nil),
	)
	metrics.ObserveDispatch(string(OutcomeSent))
	return OutcomeSent, nil
}

// splitAddrs splits a comma-separated address list, trimming whitespace and
// dropping empties.
func splitAddrs(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
