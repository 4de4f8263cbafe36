package account

import (
	"context"
	"io"
	"time"
)

// PasswordHasher はパスワードの一方向ハッシュを扱います。
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(plain, hash string) bool
}

// Token は署名済みセッショントークンです。
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// TokenIssuer はユーザー ID を埋め込んだセッショントークンを発行します。
type TokenIssuer interface {
	Issue(userID string) (Token, error)
}

// Photo はアップロードされたプロフィール画像です。
type Photo struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// PhotoStore はプロフィール画像を外部ストレージへ保存し、公開 URL を返します。
type PhotoStore interface {
	Upload(ctx context.Context, photo Photo) (string, error)
}

// Notifier は登録完了通知を送信します。失敗は実装側でログに記録されます。
type Notifier interface {
	SendWelcome(ctx context.Context, to, username string)
}

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

type noopNotifier struct{}

func (noopNotifier) SendWelcome(context.Context, string, string) {}
