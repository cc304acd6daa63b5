package email

import (
	"context"

	"github.com/rs/zerolog"
)

// LogSender writes the reset link to the log instead of delivering mail.
// Default transport in dev, where no SMTP server or broker is configured.
type LogSender struct {
	lg zerolog.Logger
}

func NewLogSender(lg zerolog.Logger) *LogSender {
	return &LogSender{
		lg: lg.With().Str("component", "log_sender").Logger(),
	}
}

func (s *LogSender) SendPasswordReset(ctx context.Context, toEmail, toName, resetURL string) error {
	s.lg.Info().
		Str("to", toEmail).
		Str("name", toName).
		Str("url", resetURL).
		Msg("password reset mail (log transport)")
	return nil
}
