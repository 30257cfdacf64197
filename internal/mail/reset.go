package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
)

const resetSubject = "Request to change the password"

var resetTemplate = template.Must(template.New("reset").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <h2>Password reset</h2>
  <p>We received a request to change the password of your account.</p>
  <p><a href="{{.Link}}">Reset your password</a></p>
  <p>If you did not ask for this, you can ignore this email.</p>
</body>
</html>
`))

// ResetMailer turns a reset token into an email and hands it to a Sender.
type ResetMailer struct {
	sender  Sender
	baseURL string
}

func NewResetMailer(sender Sender, resetURLBase string) *ResetMailer {
	return &ResetMailer{sender: sender, baseURL: resetURLBase}
}

func (m *ResetMailer) SendResetLink(ctx context.Context, email, token string) error {
	msg, err := m.Compose(email, token)
	if err != nil {
		return err
	}
	return m.sender.Send(ctx, msg)
}

func (m *ResetMailer) Compose(email, token string) (Message, error) {
	link := m.baseURL + "?token=" + url.QueryEscape(token)

	var body bytes.Buffer
	if err := resetTemplate.Execute(&body, struct{ Link string }{Link: link}); err != nil {
		return Message{}, fmt.Errorf("render reset email failed: %w", err)
	}

	return Message{
		To:        email,
		Subject:   resetSubject,
		PlainText: "Use this link to change your password: " + link,
		HTML:      body.String(),
	}, nil
}
