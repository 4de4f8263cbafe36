package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/Amsaho/jobhunt/internal/core/job"
	pgdb "github.com/Amsaho/jobhunt/internal/platform/db/postgres"
	"github.com/jackc/pgx/v5"
)

const (
	findJobByIDQuery = `
        SELECT id, title, company_id, application_ids, created_at, updated_at
          FROM jobs
         WHERE id = $1
         LIMIT 1`

	appendJobApplicationQuery = `
        UPDATE jobs
           SET application_ids = array_append(application_ids, $2::uuid),
               updated_at = $3
         WHERE id = $1`
)

// JobRepository は PostgreSQL を利用した求人永続化の実装です。
type JobRepository struct {
	pool pgdb.Queryer
}

// NewJobRepository は JobRepository を生成します。
func NewJobRepository(pool pgdb.Queryer) *JobRepository {
	return &JobRepository{pool: pool}
}

// FindByID は ID で求人を取得します。
func (r *JobRepository) FindByID(ctx context.Context, id string) (*job.Job, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	found, err := scanJob(exec.QueryRow(ctx, findJobByIDQuery, id))
	if err != nil {
		return nil, err
	}
	return found, nil
}

// AppendApplication は求人の応募一覧の末尾へ応募 ID を追加します。
func (r *JobRepository) AppendApplication(ctx context.Context, jobID, applicationID string, at time.Time) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, appendJobApplicationQuery, jobID, applicationID, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return job.ErrJobNotFound
	}
	return nil
}

func scanJob(row pgx.Row) (*job.Job, error) {
	var (
		j        job.Job
		appIDs   []string
		createAt time.Time
		updateAt time.Time
	)

	if err := row.Scan(&j.ID, &j.Title, &j.CompanyID, &appIDs, &createAt, &updateAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, job.ErrJobNotFound
		}
		return nil, err
	}

	j.ApplicationIDs = appIDs
	j.CreatedAt = createAt
	j.UpdatedAt = updateAt
	return &j, nil
}
