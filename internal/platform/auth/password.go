package auth

import (
	"errors"
	"fmt"

	"github.com/Amsaho/jobhunt/internal/core/account"
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost はパスワードハッシュのコスト係数です。
const DefaultBcryptCost = 10

// BcryptHasher は bcrypt によるパスワードハッシュ実装です。
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher は BcryptHasher を生成します。cost が範囲外の場合は既定値を使います。
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash はソルト付きハッシュを生成します。72 バイトを超える平文は account.ErrPasswordTooLong です。
func (h *BcryptHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("auth: hash password: %w", account.ErrPasswordTooLong)
	}
	if err != nil {
		return "", fmt.Errorf("auth: hash password: %w", err)
	}
	return string(b), nil
}

// Compare は平文とハッシュが一致するかを返します。ハッシュが壊れている場合も false です。
func (h *BcryptHasher) Compare(plain, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
