package job

import "errors"

var (
	// ErrJobNotFound は求人が存在しない場合に返却されます。
	ErrJobNotFound = errors.New("job not found")
	// ErrInvalidID は ID が不正な場合に返却されます。
	ErrInvalidID = errors.New("invalid id")
)
