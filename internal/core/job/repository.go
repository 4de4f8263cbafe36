package job

import (
	"context"
	"time"
)

// Repository は求人エンティティの永続化を行うインターフェースです。
type Repository interface {
	FindByID(ctx context.Context, id string) (*Job, error)
	// AppendApplication は応募 ID を求人の応募一覧の末尾に追加します。
	AppendApplication(ctx context.Context, jobID, applicationID string, at time.Time) error
}
