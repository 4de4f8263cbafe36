package account

import "errors"

var (
	// ErrUserNotFound はユーザーが存在しない場合に返却されます。
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailAlreadyExists はメールアドレス重複時に返却されます。
	ErrEmailAlreadyExists = errors.New("user already exists with this email")
	// ErrMissingFields は必須項目が欠けている場合に返却されます。
	ErrMissingFields = errors.New("all fields are required")
	// ErrPasswordTooLong はパスワードが MaxPasswordBytes を超える場合に返却されます。
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
	// ErrInvalidEmail はメールアドレスが不正な場合に返却されます。
	ErrInvalidEmail = errors.New("invalid email")
	// ErrInvalidRole はロールが不正な場合に返却されます。
	ErrInvalidRole = errors.New("invalid role")
	// ErrInvalidID は ID が不正な場合に返却されます。
	ErrInvalidID = errors.New("invalid id")
	// ErrInvalidCredentials は認証失敗時に返却されます。
	// ユーザー不在・パスワード不一致・ロール不一致を区別しません。
	ErrInvalidCredentials = errors.New("incorrect email or password")
)
