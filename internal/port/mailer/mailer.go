// Package mailer defines the outbound email port (interface).
package mailer

import "context"

// Mailer delivers a single email. Delivery is best-effort: callers log
// failures and move on, they never propagate them to the booking caller.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
