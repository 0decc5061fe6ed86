package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/url"

	"benches/internal/models"
	"benches/internal/services/mailer"
)

const (
	TaskSendVerificationEmail  = "send_verification_email"
	TaskSendResetPasswordEmail = "send_reset_password_email"
)

// EmailPayload — данные письма в очереди
type EmailPayload struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

var verificationTmpl = template.Must(template.New("verify").Parse(`<div>
<h1>Подтвердите вашу регистрацию</h1>
<p>Для подтверждения вашей регистрации, пожалуйста, нажмите на следующую ссылку:</p>
<a href="{{.URL}}">Подтвердить регистрацию</a>
<p>Если вы не запрашивали регистрацию, пожалуйста, проигнорируйте это письмо.</p>
</div>`))

var resetTmpl = template.Must(template.New("reset").Parse(`<div>
<h1>Сброс пароля</h1>
<p>Чтобы задать новый пароль, перейдите по ссылке:</p>
<a href="{{.URL}}">Сбросить пароль</a>
<p>Если вы не запрашивали сброс пароля, просто проигнорируйте это письмо.</p>
</div>`))

// EmailNotifier ставит письма в очередь задач
type EmailNotifier struct {
	queue *Queue
}

func NewEmailNotifier(queue *Queue) *EmailNotifier {
	return &EmailNotifier{queue: queue}
}

func (n *EmailNotifier) VerificationRequested(ctx context.Context, u models.User, token string) error {
	_, err := n.queue.Enqueue(ctx, TaskSendVerificationEmail, EmailPayload{Email: u.Email, Token: token})
	return err
}

func (n *EmailNotifier) PasswordResetRequested(ctx context.Context, u models.User, token string) error {
	_, err := n.queue.Enqueue(ctx, TaskSendResetPasswordEmail, EmailPayload{Email: u.Email, Token: token})
	return err
}

// Emails выполняет почтовые задачи
type Emails struct {
	sender  mailer.Sender
	baseURL string
}

func NewEmails(sender mailer.Sender, baseURL string) *Emails {
	return &Emails{sender: sender, baseURL: baseURL}
}

// Register регистрирует почтовые задачи в воркере
func (e *Emails) Register(w *Worker) {
	w.Register(TaskSendVerificationEmail, e.sendVerification)
	w.Register(TaskSendResetPasswordEmail, e.sendReset)
}

func (e *Emails) sendVerification(ctx context.Context, raw json.RawMessage) error {
	return e.send(ctx, raw, "Подтвердите регистрацию", "/auth/verify", verificationTmpl)
}

func (e *Emails) sendReset(ctx context.Context, raw json.RawMessage) error {
	return e.send(ctx, raw, "Сброс пароля", "/reset-password", resetTmpl)
}

func (e *Emails) send(ctx context.Context, raw json.RawMessage, subject, path string, tmpl *template.Template) error {
	var p EmailPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("payload: %w", err)
	}
	body, err := renderEmail(tmpl, e.baseURL+path, p.Token)
	if err != nil {
		return err
	}
	return e.sender.Send(ctx, p.Email, subject, body)
}

func renderEmail(tmpl *template.Template, link, token string) (string, error) {
	u := link + "?" + url.Values{"token": {token}}.Encode()
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ URL string }{URL: u}); err != nil {
		return "", fmt.Errorf("render %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
