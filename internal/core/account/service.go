package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Service はアカウント登録・認証・プロフィール更新のユースケースをまとめます。
type Service struct {
	repo     Repository
	hasher   PasswordHasher
	tokens   TokenIssuer
	photos   PhotoStore
	notifier Notifier
	clock    Clock
	tx       TransactionManager
	logger   *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// UseCase はアカウントユースケースの公開インターフェースです。
type UseCase interface {
	Register(ctx context.Context, in RegisterInput) (*User, error)
	Login(ctx context.Context, in LoginInput) (*Session, error)
	UpdateProfile(ctx context.Context, in UpdateProfileInput) (*User, error)
	GetUser(ctx context.Context, id string) (*User, error)
}

// Dependencies は Service が利用する外部コンポーネントです。
// Clock / TransactionManager / Notifier / Logger は省略可能です。
type Dependencies struct {
	Repo     Repository
	Hasher   PasswordHasher
	Tokens   TokenIssuer
	Photos   PhotoStore
	Notifier Notifier
	Clock    Clock
	Tx       TransactionManager
	Logger   *slog.Logger
}

// NewService は Service を生成します。
func NewService(deps Dependencies) *Service {
	s := &Service{
		repo:     deps.Repo,
		hasher:   deps.Hasher,
		tokens:   deps.Tokens,
		photos:   deps.Photos,
		notifier: deps.Notifier,
		clock:    deps.Clock,
		tx:       deps.Tx,
		logger:   deps.Logger,
	}
	if s.notifier == nil {
		s.notifier = noopNotifier{}
	}
	if s.clock == nil {
		s.clock = realClock{}
	}
	if s.tx == nil {
		s.tx = noopTransactionManager{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// RegisterInput はアカウント登録時の入力です。Photo は必須です。
type RegisterInput struct {
	Fullname    string
	Email       string
	PhoneNumber string
	Password    string
	Role        string
	Photo       *Photo
}

// LoginInput はログイン時の入力です。
type LoginInput struct {
	Email    string
	Password string
	Role     string
}

// UpdateProfileInput はプロフィール更新時の入力です。nil または空文字の項目は変更しません。
type UpdateProfileInput struct {
	UserID      string
	Fullname    *string
	Email       *string
	PhoneNumber *string
	Bio         *string
	// Skills はカンマ区切りのスキル一覧です。
	Skills *string
	Photo  *Photo
}

// MaxPasswordBytes は bcrypt が扱えるパスワードの最大バイト長です。
const MaxPasswordBytes = 72

// Register は新しいユーザーを登録します。
// 入力検証とハッシュ化は画像アップロードより前に行い、失敗時に画像を残しません。
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	fullname := strings.TrimSpace(in.Fullname)
	phone := strings.TrimSpace(in.PhoneNumber)
	if fullname == "" || strings.TrimSpace(in.Email) == "" || phone == "" ||
		in.Password == "" || strings.TrimSpace(in.Role) == "" || in.Photo == nil || in.Photo.Content == nil {
		return nil, ErrMissingFields
	}
	if len(in.Password) > MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}

	role, ok := ParseRole(in.Role)
	if !ok {
		return nil, ErrInvalidRole
	}

	if err := s.ensureEmailNotExists(ctx, email); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("account: hash password: %w", err)
	}

	photoURL, err := s.photos.Upload(ctx, *in.Photo)
	if err != nil {
		return nil, fmt.Errorf("account: upload profile photo: %w", err)
	}

	now := s.clock.Now()
	created, err := s.repo.Create(ctx, &User{
		Fullname:     fullname,
		Email:        email,
		PhoneNumber:  phone,
		PasswordHash: hash,
		Role:         role,
		Profile: Profile{
			ProfilePhoto: photoURL,
		},
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	s.notifier.SendWelcome(ctx, created.Email, created.Fullname)

	return created, nil
}

// Login はメールアドレス・パスワード・ロールを検証し、セッションを発行します。
func (s *Service) Login(ctx context.Context, in LoginInput) (*Session, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" || strings.TrimSpace(in.Role) == "" {
		return nil, ErrMissingFields
	}

	u, err := s.findForLogin(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		// ユーザー不在でもハッシュ比較を行い応答時間を揃える
		s.hasher.Compare(in.Password, s.fallbackHash())
		return nil, ErrInvalidCredentials
	}

	if !s.hasher.Compare(in.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if !strings.EqualFold(strings.TrimSpace(in.Role), string(u.Role)) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, fmt.Errorf("account: issue token: %w", err)
	}

	return &Session{
		User:      u.Sanitized(),
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt,
	}, nil
}

// UpdateProfile はプロフィールを部分更新します。
func (s *Service) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*User, error) {
	userID, err := normalizeID(in.UserID)
	if err != nil {
		return nil, err
	}

	var newEmail string
	if v := present(in.Email); v != "" {
		newEmail, err = normalizeEmail(v)
		if err != nil {
			return nil, err
		}
	}

	var photoURL string
	if in.Photo != nil && in.Photo.Content != nil {
		if _, err := s.repo.FindByID(ctx, userID); err != nil {
			return nil, err
		}
		photoURL, err = s.photos.Upload(ctx, *in.Photo)
		if err != nil {
			return nil, fmt.Errorf("account: upload profile photo: %w", err)
		}
	}

	var updated *User
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, userID)
		if err != nil {
			return err
		}

		if v := present(in.Fullname); v != "" {
			existing.Fullname = v
		}
		if newEmail != "" && newEmail != existing.Email {
			if err := s.ensureEmailNotExists(txCtx, newEmail); err != nil {
				return err
			}
			existing.Email = newEmail
		}
		if v := present(in.PhoneNumber); v != "" {
			existing.PhoneNumber = v
		}
		if v := present(in.Bio); v != "" {
			existing.Profile.Bio = v
		}
		if v := present(in.Skills); v != "" {
			existing.Profile.Skills = ParseSkills(v)
		}
		if photoURL != "" {
			existing.Profile.ProfilePhoto = photoURL
		}

		existing.UpdatedAt = s.clock.Now()

		result, err := s.repo.Update(txCtx, existing)
		if err != nil {
			return err
		}
		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

// GetUser は ID でユーザーを取得します。
func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	userID, err := normalizeID(id)
	if err != nil {
		return nil, err
	}

	var found *User
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.FindByID(txCtx, userID)
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

// ParseSkills はカンマ区切りの文字列を重複のないスキル一覧へ変換します。
func ParseSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		skill := strings.TrimSpace(p)
		if skill == "" {
			continue
		}
		if _, dup := seen[skill]; dup {
			continue
		}
		seen[skill] = struct{}{}
		skills = append(skills, skill)
	}
	return skills
}

func (s *Service) findForLogin(ctx context.Context, rawEmail string) (*User, error) {
	email, err := normalizeEmail(rawEmail)
	if err != nil {
		return nil, nil
	}

	u, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) fallbackHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(uuid.NewString())
		if err != nil {
			s.logger.Warn("failed to prepare fallback password hash", slog.Any("error", err))
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

func (s *Service) ensureEmailNotExists(ctx context.Context, email string) error {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return err
	}
	if u != nil {
		return ErrEmailAlreadyExists
	}
	return nil
}

func normalizeEmail(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidEmail
	}

	addr, err := mail.ParseAddress(trimmed)
	if err != nil {
		return "", ErrInvalidEmail
	}

	return strings.ToLower(addr.Address), nil
}

func normalizeID(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("user id: %w", ErrInvalidID)
	}
	parsed, err := uuid.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("user id %q: %w", trimmed, ErrInvalidID)
	}
	return parsed.String(), nil
}

func present(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}
