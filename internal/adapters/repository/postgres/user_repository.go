package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/Amsaho/jobhunt/internal/core/account"
	pgdb "github.com/Amsaho/jobhunt/internal/platform/db/postgres"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, fullname, email, phone_number, password_hash, role, bio, skills, profile_photo, created_at, updated_at`

const (
	insertUserQuery = `
        INSERT INTO users (fullname, email, phone_number, password_hash, role, bio, skills, profile_photo, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING ` + userColumns

	updateUserQuery = `
        UPDATE users
           SET fullname = $1,
               email = $2,
               phone_number = $3,
               bio = $4,
               skills = $5,
               profile_photo = $6,
               updated_at = $7
         WHERE id = $8
        RETURNING ` + userColumns

	findUserByIDQuery = `
        SELECT ` + userColumns + `
          FROM users
         WHERE id = $1
         LIMIT 1`

	findUserByEmailQuery = `
        SELECT ` + userColumns + `
          FROM users
         WHERE email = $1
         LIMIT 1`
)

// UserRepository は PostgreSQL を利用したユーザー永続化の実装です。
type UserRepository struct {
	pool pgdb.Queryer
}

// NewUserRepository は UserRepository を生成します。
func NewUserRepository(pool pgdb.Queryer) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create はユーザーを新規作成します。
func (r *UserRepository) Create(ctx context.Context, u *account.User) (*account.User, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, insertUserQuery,
		u.Fullname,
		u.Email,
		u.PhoneNumber,
		u.PasswordHash,
		string(u.Role),
		u.Profile.Bio,
		skillsArg(u.Profile.Skills),
		u.Profile.ProfilePhoto,
		u.CreatedAt,
		u.UpdatedAt,
	)

	created, err := scanUser(row)
	if err != nil {
		return nil, translateUserPgError(err)
	}
	return created.Sanitized(), nil
}

// Update はプロフィール項目を更新します。パスワードとロールは変更しません。
func (r *UserRepository) Update(ctx context.Context, u *account.User) (*account.User, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, updateUserQuery,
		u.Fullname,
		u.Email,
		u.PhoneNumber,
		u.Profile.Bio,
		skillsArg(u.Profile.Skills),
		u.Profile.ProfilePhoto,
		u.UpdatedAt,
		u.ID,
	)

	updated, err := scanUser(row)
	if err != nil {
		return nil, translateUserPgError(err)
	}
	return updated.Sanitized(), nil
}

// FindByID は ID でユーザーを取得します。
func (r *UserRepository) FindByID(ctx context.Context, id string) (*account.User, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	found, err := scanUser(exec.QueryRow(ctx, findUserByIDQuery, id))
	if err != nil {
		return nil, translateUserPgError(err)
	}
	return found, nil
}

// FindByEmail はメールアドレスでユーザーを取得します。ログイン照合のためハッシュを含みます。
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*account.User, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	found, err := scanUser(exec.QueryRow(ctx, findUserByEmailQuery, email))
	if err != nil {
		return nil, translateUserPgError(err)
	}
	return found, nil
}

func scanUser(row pgx.Row) (*account.User, error) {
	var (
		u                    account.User
		role                 string
		skills               []string
		createdAt, updatedAt time.Time
	)

	if err := row.Scan(
		&u.ID,
		&u.Fullname,
		&u.Email,
		&u.PhoneNumber,
		&u.PasswordHash,
		&role,
		&u.Profile.Bio,
		&skills,
		&u.Profile.ProfilePhoto,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrUserNotFound
		}
		return nil, err
	}

	u.Role = account.Role(role)
	u.Profile.Skills = skills
	u.CreatedAt = createdAt
	u.UpdatedAt = updatedAt
	return &u, nil
}

func translateUserPgError(err error) error {
	code, _, ok := pgdb.ConstraintViolation(err)
	if !ok {
		return err
	}
	switch code {
	case pgdb.CodeUniqueViolation:
		return account.ErrEmailAlreadyExists
	case pgdb.CodeCheckViolation:
		return account.ErrInvalidRole
	default:
		return err
	}
}

func skillsArg(skills []string) []string {
	if skills == nil {
		return []string{}
	}
	return skills
}
