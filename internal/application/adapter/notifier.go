// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// SendReportInput represents one rendered report ready for delivery.
type SendReportInput struct {
	To      string
	Name    string
	Subject string
	Body    string
}

// Notifier delivers a rendered report to a destination. Fire-and-confirm;
// no delivery-receipt tracking. Retry policy belongs to the implementation,
// not the caller.
type Notifier interface {
	// Send delivers the report. A non-nil error means delivery failed.
	Send(ctx context.Context, input SendReportInput) error
}
