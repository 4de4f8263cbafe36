package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/Amsaho/jobhunt/internal/core/application"
	"github.com/Amsaho/jobhunt/internal/core/job"
	pgdb "github.com/Amsaho/jobhunt/internal/platform/db/postgres"
	"github.com/jackc/pgx/v5"
)

const (
	applicationJobFKey       = "applications_job_id_fkey"
	applicationApplicantFKey = "applications_applicant_id_fkey"
)

const applicationColumns = `id, job_id, applicant_id, status, created_at, updated_at`

const (
	insertApplicationQuery = `
        INSERT INTO applications (job_id, applicant_id, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + applicationColumns

	findApplicationByIDQuery = `
        SELECT ` + applicationColumns + `
          FROM applications
         WHERE id = $1
         LIMIT 1`

	findApplicationByJobAndApplicantQuery = `
        SELECT ` + applicationColumns + `
          FROM applications
         WHERE job_id = $1 AND applicant_id = $2
         LIMIT 1`

	updateApplicationStatusQuery = `
        UPDATE applications
           SET status = $1,
               updated_at = $2
         WHERE id = $3
        RETURNING ` + applicationColumns

	listApplicationsByApplicantQuery = `
        SELECT a.id, a.job_id, a.applicant_id, a.status, a.created_at, a.updated_at,
               j.id, j.title, j.company_id,
               c.id, c.name, c.logo
          FROM applications a
          JOIN jobs j ON j.id = a.job_id
          JOIN companies c ON c.id = j.company_id
         WHERE a.applicant_id = $1
         ORDER BY a.created_at DESC, a.id DESC`

	listApplicationsByJobQuery = `
        SELECT a.id, a.job_id, a.applicant_id, a.status, a.created_at, a.updated_at,
               u.id, u.fullname, u.email, u.phone_number, u.bio, u.skills, u.profile_photo
          FROM applications a
          JOIN users u ON u.id = a.applicant_id
         WHERE a.job_id = $1
         ORDER BY a.created_at DESC, a.id DESC`
)

// ApplicationRepository は PostgreSQL を利用した応募永続化の実装です。
// (job_id, applicant_id) の一意インデックスが重複応募の最終判定を担います。
type ApplicationRepository struct {
	pool pgdb.Queryer
}

// NewApplicationRepository は ApplicationRepository を生成します。
func NewApplicationRepository(pool pgdb.Queryer) *ApplicationRepository {
	return &ApplicationRepository{pool: pool}
}

// Create は応募を新規作成します。
func (r *ApplicationRepository) Create(ctx context.Context, a *application.Application) (*application.Application, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, insertApplicationQuery,
		a.JobID,
		a.ApplicantID,
		string(a.Status),
		a.CreatedAt,
		a.UpdatedAt,
	)

	created, err := scanApplication(row)
	if err != nil {
		return nil, translateApplicationPgError(err)
	}
	return created, nil
}

// FindByID は ID で応募を取得します。
func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*application.Application, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	found, err := scanApplication(exec.QueryRow(ctx, findApplicationByIDQuery, id))
	if err != nil {
		return nil, translateApplicationPgError(err)
	}
	return found, nil
}

// FindByJobAndApplicant は求人と応募者の組で応募を取得します。
func (r *ApplicationRepository) FindByJobAndApplicant(ctx context.Context, jobID, applicantID string) (*application.Application, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	found, err := scanApplication(exec.QueryRow(ctx, findApplicationByJobAndApplicantQuery, jobID, applicantID))
	if err != nil {
		return nil, translateApplicationPgError(err)
	}
	return found, nil
}

// UpdateStatus はステータスのみを更新します。
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, status application.Status, at time.Time) (*application.Application, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	updated, err := scanApplication(exec.QueryRow(ctx, updateApplicationStatusQuery, string(status), at, id))
	if err != nil {
		return nil, translateApplicationPgError(err)
	}
	return updated, nil
}

// ListByApplicant は応募者の応募を求人・会社付きで新しい順に返します。
func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID string) ([]*application.Application, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, listApplicationsByApplicantQuery, applicantID)
	if err != nil {
		return nil, translateApplicationPgError(err)
	}
	defer rows.Close()

	apps := make([]*application.Application, 0)
	for rows.Next() {
		var (
			a       application.Application
			status  string
			jobSnap application.JobSnapshot
			company application.CompanySnapshot
		)
		if err := rows.Scan(
			&a.ID, &a.JobID, &a.ApplicantID, &status, &a.CreatedAt, &a.UpdatedAt,
			&jobSnap.ID, &jobSnap.Title, &jobSnap.CompanyID,
			&company.ID, &company.Name, &company.Logo,
		); err != nil {
			return nil, translateApplicationPgError(err)
		}
		a.Status = application.Status(status)
		jobSnap.Company = &company
		a.Job = &jobSnap
		apps = append(apps, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, translateApplicationPgError(err)
	}
	return apps, nil
}

// ListByJob は求人への応募を応募者付きで新しい順に返します。
func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID string) ([]*application.Application, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, listApplicationsByJobQuery, jobID)
	if err != nil {
		return nil, translateApplicationPgError(err)
	}
	defer rows.Close()

	apps := make([]*application.Application, 0)
	for rows.Next() {
		var (
			a         application.Application
			status    string
			applicant application.ApplicantSnapshot
		)
		if err := rows.Scan(
			&a.ID, &a.JobID, &a.ApplicantID, &status, &a.CreatedAt, &a.UpdatedAt,
			&applicant.ID, &applicant.Fullname, &applicant.Email, &applicant.PhoneNumber,
			&applicant.Bio, &applicant.Skills, &applicant.ProfilePhoto,
		); err != nil {
			return nil, translateApplicationPgError(err)
		}
		a.Status = application.Status(status)
		a.Applicant = &applicant
		apps = append(apps, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, translateApplicationPgError(err)
	}
	return apps, nil
}

func scanApplication(row pgx.Row) (*application.Application, error) {
	var (
		a      application.Application
		status string
	)

	if err := row.Scan(&a.ID, &a.JobID, &a.ApplicantID, &status, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, application.ErrApplicationNotFound
		}
		return nil, err
	}

	a.Status = application.Status(status)
	return &a, nil
}

func translateApplicationPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return application.ErrApplicationNotFound
	}

	code, constraint, ok := pgdb.ConstraintViolation(err)
	if !ok {
		return err
	}
	switch code {
	case pgdb.CodeUniqueViolation:
		return application.ErrAlreadyApplied
	case pgdb.CodeForeignKeyViolation:
		switch constraint {
		case applicationJobFKey:
			return job.ErrJobNotFound
		case applicationApplicantFKey:
			return application.ErrApplicantNotFound
		default:
			return err
		}
	case pgdb.CodeCheckViolation:
		return application.ErrInvalidStatus
	default:
		return err
	}
}
