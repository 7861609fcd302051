package auth

import (
	"context"

	"go.uber.org/zap"
)

// Mailer delivers account emails. The real sender plugs in here; dev and
// test environments use the console implementation.
type Mailer interface {
	SendPasswordResetCode(ctx context.Context, email, code string) error
}

type DevConsoleMailer struct {
	log     *zap.Logger
	enabled bool
}

func NewDevConsoleMailer(log *zap.Logger, enabled bool) *DevConsoleMailer {
	return &DevConsoleMailer{log: log, enabled: enabled}
}

func (m *DevConsoleMailer) SendPasswordResetCode(_ context.Context, email, code string) error {
	if m.enabled {
		m.log.Info("dev_email_password_reset",
			zap.String("email", email),
			zap.String("code", code),
		)
	}
	return nil
}
