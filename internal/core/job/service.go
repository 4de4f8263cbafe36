package job

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// Service は求人の参照ユースケースです。
type Service struct {
	repo Repository
	tx   TransactionManager
}

// UseCase は求人ユースケースの公開インターフェースです。
type UseCase interface {
	GetJob(ctx context.Context, id string) (*Job, error)
}

// NewService は Service を生成します。
func NewService(repo Repository, tx TransactionManager) *Service {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, tx: tx}
}

// GetJob は ID で求人を取得します。
func (s *Service) GetJob(ctx context.Context, id string) (*Job, error) {
	normalized, err := NormalizeID(id)
	if err != nil {
		return nil, err
	}

	var found *Job
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.FindByID(txCtx, normalized)
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

// NormalizeID は求人 ID を検証して正規化します。
func NormalizeID(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("job id: %w", ErrInvalidID)
	}
	parsed, err := uuid.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("job id %q: %w", trimmed, ErrInvalidID)
	}
	return parsed.String(), nil
}
