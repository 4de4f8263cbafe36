package notification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
)

// Message は送信する 1 通のメールです。
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Transport は外部のメール配送手段の抽象です。
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

// JobMail は応募関連メールに埋め込む値です。
type JobMail struct {
	JobTitle    string
	CompanyName string
	LogoURL     string
}

// Kind はテンプレートの種類です。
type Kind string

const (
	KindConfirmation Kind = "confirmation"
	KindSelection    Kind = "selection"
	KindRejection    Kind = "rejection"
	KindWelcome      Kind = "welcome"
)

// Dispatcher はトランザクションメールを描画して送信します。
// 送信はベストエフォートであり、失敗はログに記録されるだけで呼び出し元へは返りません。
type Dispatcher struct {
	transport Transport
	from      string
	brandLogo string
	logger    *slog.Logger
}

// Option は Dispatcher の生成オプションです。
type Option func(*Dispatcher)

// WithLogger はログ出力先を指定します。
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithBrandLogo は登録完了メールに表示するロゴ URL を指定します。
func WithBrandLogo(url string) Option {
	return func(d *Dispatcher) {
		d.brandLogo = url
	}
}

// NewDispatcher は Dispatcher を生成します。transport が nil の場合は送信せずログのみ残します。
func NewDispatcher(transport Transport, from string, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		transport: transport,
		from:      from,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SendConfirmation は応募受付メールを送信します。
func (d *Dispatcher) SendConfirmation(ctx context.Context, to string, job JobMail) {
	d.dispatch(ctx, KindConfirmation, to, confirmationTemplate, job)
}

// SendSelection は選考通過メールを送信します。
func (d *Dispatcher) SendSelection(ctx context.Context, to string, job JobMail) {
	d.dispatch(ctx, KindSelection, to, selectionTemplate, job)
}

// SendRejection は不採用メールを送信します。
func (d *Dispatcher) SendRejection(ctx context.Context, to string, job JobMail) {
	d.dispatch(ctx, KindRejection, to, rejectionTemplate, job)
}

// SendWelcome はアカウント作成完了メールを送信します。
func (d *Dispatcher) SendWelcome(ctx context.Context, to, username string) {
	d.dispatch(ctx, KindWelcome, to, welcomeTemplate, welcomeData{
		Username: username,
		LogoURL:  d.brandLogo,
	})
}

func (d *Dispatcher) dispatch(ctx context.Context, kind Kind, to string, tmpl *mailTemplate, data any) {
	to = strings.TrimSpace(to)
	logger := d.logger.With(slog.String("kind", string(kind)), slog.String("to", to))

	if to == "" {
		logger.WarnContext(ctx, "notification skipped: empty recipient")
		return
	}
	if d.transport == nil {
		logger.InfoContext(ctx, "notification skipped: mail transport is not configured")
		return
	}

	msg, err := tmpl.render(d.from, to, data)
	if err != nil {
		logger.ErrorContext(ctx, "failed to render notification", slog.Any("error", err))
		return
	}

	if err := d.transport.Send(ctx, msg); err != nil {
		logger.ErrorContext(ctx, "failed to send notification", slog.Any("error", err))
		return
	}

	logger.InfoContext(ctx, "notification sent")
}

type mailTemplate struct {
	subject string
	body    *template.Template
}

func (t *mailTemplate) render(from, to string, data any) (Message, error) {
	var buf bytes.Buffer
	if err := t.body.Execute(&buf, data); err != nil {
		return Message{}, fmt.Errorf("notification: render %s: %w", t.body.Name(), err)
	}
	return Message{
		From:    from,
		To:      to,
		Subject: t.subject,
		HTML:    buf.String(),
	}, nil
}
