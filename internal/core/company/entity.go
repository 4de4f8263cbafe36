package company

import "time"

// Company は会社エンティティです。求人の掲載元であり、本サービスからは参照のみ行います。
type Company struct {
	ID        string
	Name      string
	Logo      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
