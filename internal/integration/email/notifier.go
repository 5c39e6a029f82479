// Package email provides email sending functionality via Resend.
package email

import (
	"context"

	"github.com/creator-ledger/backend/internal/application/adapter"
	domainerror "github.com/creator-ledger/backend/internal/domain/error"
	"github.com/creator-ledger/backend/internal/integration/email/templates"
)

// ReportNotifier delivers rendered reports over email. The plain-text body
// produced by the report engine is the canonical content; the HTML template
// only wraps it for mail clients.
type ReportNotifier struct {
	sender   adapter.EmailSender
	renderer *templates.Renderer
}

// NewReportNotifier creates a new report notifier.
func NewReportNotifier(sender adapter.EmailSender, renderer *templates.Renderer) *ReportNotifier {
	return &ReportNotifier{
		sender:   sender,
		renderer: renderer,
	}
}

// Send delivers the report to the creator's email address.
func (n *ReportNotifier) Send(ctx context.Context, input adapter.SendReportInput) error {
	html, text, err := n.renderer.Render("quarterly_report", templates.ReportEmailData{
		UserName: input.Name,
		Subject:  input.Subject,
		Body:     input.Body,
	})
	if err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeTemplateRenderFailed,
			"failed to render report email",
			err,
		)
	}

	_, err = n.sender.Send(ctx, adapter.SendEmailInput{
		To:      input.To,
		Name:    input.Name,
		Subject: input.Subject,
		HTML:    html,
		Text:    text,
	})
	return err
}

var _ adapter.Notifier = (*ReportNotifier)(nil)
