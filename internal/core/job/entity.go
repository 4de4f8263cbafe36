package job

import "time"

// Job は求人エンティティです。ApplicationIDs は応募の追加順に並びます。
type Job struct {
	ID             string
	Title          string
	CompanyID      string
	ApplicationIDs []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
