package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Amsaho/jobhunt/internal/core/account"
	"github.com/Amsaho/jobhunt/internal/core/company"
	"github.com/Amsaho/jobhunt/internal/core/job"
	"github.com/Amsaho/jobhunt/internal/core/notification"
	"github.com/google/uuid"
)

// Service は応募の作成とステータス遷移を扱います。
type Service struct {
	repo       Repository
	jobs       JobStore
	companies  CompanyStore
	applicants ApplicantStore
	notifier   Notifier
	policy     TransitionPolicy
	clock      Clock
	tx         TransactionManager
	logger     *slog.Logger
}

// UseCase は応募ユースケースの公開インターフェースです。
type UseCase interface {
	Submit(ctx context.Context, in SubmitInput) (*Application, error)
	UpdateStatus(ctx context.Context, in UpdateStatusInput) (*Application, error)
	ListForApplicant(ctx context.Context, applicantID string) ([]*Application, error)
	ListApplicants(ctx context.Context, jobID string) (*JobApplicants, error)
	GetApplication(ctx context.Context, id string) (*Application, error)
}

// Dependencies は Service が利用する外部コンポーネントです。
type Dependencies struct {
	Repo       Repository
	Jobs       JobStore
	Companies  CompanyStore
	Applicants ApplicantStore
	Notifier   Notifier
	Policy     TransitionPolicy
	Clock      Clock
	Tx         TransactionManager
	Logger     *slog.Logger
}

// NewService は Service を生成します。Policy 未指定時は任意の遷移を許可します。
func NewService(deps Dependencies) *Service {
	s := &Service{
		repo:       deps.Repo,
		jobs:       deps.Jobs,
		companies:  deps.Companies,
		applicants: deps.Applicants,
		notifier:   deps.Notifier,
		policy:     deps.Policy,
		clock:      deps.Clock,
		tx:         deps.Tx,
		logger:     deps.Logger,
	}
	if s.notifier == nil {
		s.notifier = noopNotifier{}
	}
	if s.policy == nil {
		s.policy = PermissivePolicy{}
	}
	if s.clock == nil {
		s.clock = realClock{}
	}
	if s.tx == nil {
		s.tx = noopTransactionManager{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// SubmitInput は応募作成時の入力です。
type SubmitInput struct {
	JobID       string
	ApplicantID string
}

// UpdateStatusInput はステータス更新時の入力です。
type UpdateStatusInput struct {
	ApplicationID string
	Status        string
}

// JobApplicants は求人と、その応募一覧です。
type JobApplicants struct {
	Job          *job.Job
	Company      *company.Company
	Applications []*Application
}

// Submit は求人への応募を作成し、受付メールを送信します。
// メール送信の成否は応募結果に影響しません。
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*Application, error) {
	jobID, err := normalizeID("job", in.JobID)
	if err != nil {
		return nil, err
	}
	applicantID, err := normalizeID("applicant", in.ApplicantID)
	if err != nil {
		return nil, err
	}

	var (
		created *Application
		target  *job.Job
	)
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByJobAndApplicant(txCtx, jobID, applicantID)
		if err != nil && !errors.Is(err, ErrApplicationNotFound) {
			return err
		}
		if existing != nil {
			return ErrAlreadyApplied
		}

		found, err := s.jobs.FindByID(txCtx, jobID)
		if err != nil {
			return err
		}
		target = found

		now := s.clock.Now()
		app, err := s.repo.Create(txCtx, &Application{
			JobID:       jobID,
			ApplicantID: applicantID,
			Status:      StatusPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return err
		}

		if err := s.jobs.AppendApplication(txCtx, jobID, app.ID, now); err != nil {
			return fmt.Errorf("application: append to job: %w", err)
		}

		created = app
		return nil
	}); err != nil {
		return nil, err
	}

	s.notifyConfirmation(ctx, created, target)

	return created, nil
}

// UpdateStatus は応募のステータスを更新し、結果に応じたメールを送信します。
func (s *Service) UpdateStatus(ctx context.Context, in UpdateStatusInput) (*Application, error) {
	if strings.TrimSpace(in.Status) == "" {
		return nil, fmt.Errorf("status is required: %w", ErrInvalidStatus)
	}
	status, ok := ParseStatus(in.Status)
	if !ok {
		return nil, fmt.Errorf("status %q: %w", strings.TrimSpace(in.Status), ErrInvalidStatus)
	}

	appID, err := normalizeID("application", in.ApplicationID)
	if err != nil {
		return nil, err
	}

	var (
		updated   *Application
		mail      notification.JobMail
		recipient string
	)
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		current, err := s.repo.FindByID(txCtx, appID)
		if err != nil {
			return err
		}

		target, err := s.jobs.FindByID(txCtx, current.JobID)
		if err != nil {
			return err
		}

		owner, err := s.companies.FindByID(txCtx, target.CompanyID)
		if err != nil {
			return err
		}

		applicant, err := s.findApplicant(txCtx, current.ApplicantID)
		if err != nil {
			return err
		}

		if !s.policy.Allow(current.Status, status) {
			return fmt.Errorf("%s -> %s: %w", current.Status, status, ErrTransitionNotAllowed)
		}

		result, err := s.repo.UpdateStatus(txCtx, appID, status, s.clock.Now())
		if err != nil {
			return err
		}

		updated = result
		recipient = applicant.Email
		mail = notification.JobMail{JobTitle: target.Title, CompanyName: owner.Name, LogoURL: owner.Logo}
		return nil
	}); err != nil {
		return nil, err
	}

	switch status {
	case StatusAccepted:
		s.notifier.SendSelection(ctx, recipient, mail)
	case StatusRejected:
		s.notifier.SendRejection(ctx, recipient, mail)
	}

	return updated, nil
}

// ListForApplicant は応募者の応募一覧を新しい順に返します。
func (s *Service) ListForApplicant(ctx context.Context, applicantID string) ([]*Application, error) {
	id, err := normalizeID("applicant", applicantID)
	if err != nil {
		return nil, err
	}

	var apps []*Application
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.ListByApplicant(txCtx, id)
		if err != nil {
			return err
		}
		apps = result
		return nil
	}); err != nil {
		return nil, err
	}
	return apps, nil
}

// ListApplicants は求人と応募者付きの応募一覧を返します。
func (s *Service) ListApplicants(ctx context.Context, jobID string) (*JobApplicants, error) {
	id, err := normalizeID("job", jobID)
	if err != nil {
		return nil, err
	}

	var out JobApplicants
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		target, err := s.jobs.FindByID(txCtx, id)
		if err != nil {
			return err
		}

		owner, err := s.companies.FindByID(txCtx, target.CompanyID)
		if err != nil {
			return err
		}

		apps, err := s.repo.ListByJob(txCtx, id)
		if err != nil {
			return err
		}

		out = JobApplicants{Job: target, Company: owner, Applications: apps}
		return nil
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetApplication は ID で応募を取得します。
func (s *Service) GetApplication(ctx context.Context, id string) (*Application, error) {
	appID, err := normalizeID("application", id)
	if err != nil {
		return nil, err
	}

	var found *Application
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.FindByID(txCtx, appID)
		if err != nil {
			return err
		}
		found = result
		return nil
	}); err != nil {
		return nil, err
	}
	return found, nil
}

// notifyConfirmation はコミット後に受付メールを送ります。参照失敗はログのみ残します。
func (s *Service) notifyConfirmation(ctx context.Context, app *Application, target *job.Job) {
	logger := s.logger.With(slog.String("application_id", app.ID), slog.String("job_id", target.ID))

	owner, err := s.companies.FindByID(ctx, target.CompanyID)
	if err != nil {
		logger.WarnContext(ctx, "confirmation skipped: company lookup failed", slog.Any("error", err))
		return
	}

	applicant, err := s.findApplicant(ctx, app.ApplicantID)
	if err != nil {
		logger.WarnContext(ctx, "confirmation skipped: applicant lookup failed", slog.Any("error", err))
		return
	}

	s.notifier.SendConfirmation(ctx, applicant.Email, notification.JobMail{
		JobTitle:    target.Title,
		CompanyName: owner.Name,
		LogoURL:     owner.Logo,
	})
}

func (s *Service) findApplicant(ctx context.Context, id string) (*account.User, error) {
	u, err := s.applicants.FindByID(ctx, id)
	if errors.Is(err, account.ErrUserNotFound) {
		return nil, ErrApplicantNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func normalizeID(kind, raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("%s id: %w", kind, ErrInvalidID)
	}
	parsed, err := uuid.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("%s id %q: %w", kind, trimmed, ErrInvalidID)
	}
	return parsed.String(), nil
}
