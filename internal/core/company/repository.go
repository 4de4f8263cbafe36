package company

import "context"

// Repository は会社エンティティの参照を行うインターフェースです。
type Repository interface {
	FindByID(ctx context.Context, id string) (*Company, error)
}
