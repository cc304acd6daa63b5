package memory

import (
	"context"
	"sync"
)

// Mailer records password-reset sends instead of delivering them. Used by
// tests and as a building block for dev wiring.
type Mailer struct {
	mu   sync.Mutex
	sent []ResetMail

	// FailWith, when set, is returned by every send.
	FailWith error
}

type ResetMail struct {
	To       string
	Name     string
	ResetURL string
}

func NewMailer() *Mailer {
	return &Mailer{}
}

func (m *Mailer) SendPasswordReset(ctx context.Context, toEmail, toName, resetURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return m.FailWith
	}
	m.sent = append(m.sent, ResetMail{To: toEmail, Name: toName, ResetURL: resetURL})
	return nil
}

// Sent returns a copy of everything recorded so far.
func (m *Mailer) Sent() []ResetMail {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]ResetMail, len(m.sent))
	copy(out, m.sent)
	return out
}
