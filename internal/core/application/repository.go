package application

import (
	"context"
	"time"
)

// Repository は応募永続化の抽象です。
type Repository interface {
	Create(ctx context.Context, app *Application) (*Application, error)
	FindByID(ctx context.Context, id string) (*Application, error)
	FindByJobAndApplicant(ctx context.Context, jobID, applicantID string) (*Application, error)
	UpdateStatus(ctx context.Context, id string, status Status, at time.Time) (*Application, error)
	// ListByApplicant は求人と会社を結合し、新しい順に返します。
	ListByApplicant(ctx context.Context, applicantID string) ([]*Application, error)
	// ListByJob は応募者を結合し、新しい順に返します。
	ListByJob(ctx context.Context, jobID string) ([]*Application, error)
}
