package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/Amsaho/jobhunt/internal/core/company"
	pgdb "github.com/Amsaho/jobhunt/internal/platform/db/postgres"
	"github.com/jackc/pgx/v5"
)

const findCompanyByIDQuery = `
        SELECT id, name, logo, created_at, updated_at
          FROM companies
         WHERE id = $1
         LIMIT 1`

// CompanyRepository は PostgreSQL を利用した会社参照の実装です。
type CompanyRepository struct {
	pool pgdb.Queryer
}

// NewCompanyRepository は CompanyRepository を生成します。
func NewCompanyRepository(pool pgdb.Queryer) *CompanyRepository {
	return &CompanyRepository{pool: pool}
}

// FindByID は ID で会社を取得します。
func (r *CompanyRepository) FindByID(ctx context.Context, id string) (*company.Company, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, findCompanyByIDQuery, id)

	found, err := scanCompany(row)
	if err != nil {
		return nil, err
	}
	return found, nil
}

func scanCompany(row pgx.Row) (*company.Company, error) {
	var (
		id, name, logo       string
		createdAt, updatedAt time.Time
	)

	if err := row.Scan(&id, &name, &logo, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, company.ErrCompanyNotFound
		}
		return nil, err
	}

	return &company.Company{
		ID:        id,
		Name:      name,
		Logo:      logo,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}
