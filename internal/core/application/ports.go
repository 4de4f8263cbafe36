package application

import (
	"context"
	"time"

	"github.com/Amsaho/jobhunt/internal/core/account"
	"github.com/Amsaho/jobhunt/internal/core/company"
	"github.com/Amsaho/jobhunt/internal/core/job"
	"github.com/Amsaho/jobhunt/internal/core/notification"
)

// JobStore は応募処理で必要な求人操作です。
type JobStore interface {
	FindByID(ctx context.Context, id string) (*job.Job, error)
	AppendApplication(ctx context.Context, jobID, applicationID string, at time.Time) error
}

// CompanyStore は会社の参照操作です。
type CompanyStore interface {
	FindByID(ctx context.Context, id string) (*company.Company, error)
}

// ApplicantStore は応募者の参照操作です。
type ApplicantStore interface {
	FindByID(ctx context.Context, id string) (*account.User, error)
}

// Notifier は応募関連メールの送信口です。送信失敗は実装側で記録され、呼び出し元へは返りません。
type Notifier interface {
	SendConfirmation(ctx context.Context, to string, job notification.JobMail)
	SendSelection(ctx context.Context, to string, job notification.JobMail)
	SendRejection(ctx context.Context, to string, job notification.JobMail)
}

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

type noopNotifier struct{}

func (noopNotifier) SendConfirmation(context.Context, string, notification.JobMail) {}
func (noopNotifier) SendSelection(context.Context, string, notification.JobMail)    {}
func (noopNotifier) SendRejection(context.Context, string, notification.JobMail)    {}
