package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Amsaho/jobhunt/internal/core/account"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("pw123")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "pw123" {
		t.Fatal("expected hash to differ from plaintext")
	}
	if !h.Compare("pw123", hash) {
		t.Fatal("expected plaintext to match its hash")
	}
	if h.Compare("wrong", hash) {
		t.Fatal("expected mismatch for wrong password")
	}
}

func TestBcryptHasher_SaltedHashesDiffer(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)
	first, _ := h.Hash("pw123")
	second, _ := h.Hash("pw123")
	if first == second {
		t.Fatal("expected salted hashes to differ")
	}
}

func TestBcryptHasher_CompareMalformedHash(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)
	if h.Compare("pw123", "") {
		t.Fatal("expected empty hash not to match")
	}
	if h.Compare("pw123", "not-a-bcrypt-hash") {
		t.Fatal("expected malformed hash not to match")
	}
}

func TestNewBcryptHasher_OutOfRangeCostFallsBack(t *testing.T) {
	t.Parallel()

	if got := NewBcryptHasher(0).cost; got != DefaultBcryptCost {
		t.Fatalf("expected default cost, got %d", got)
	}
	if got := NewBcryptHasher(bcrypt.MaxCost + 1).cost; got != DefaultBcryptCost {
		t.Fatalf("expected default cost, got %d", got)
	}
}

func TestBcryptHasher_PasswordTooLong(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)

	if _, err := h.Hash(strings.Repeat("p", account.MaxPasswordBytes+1)); !errors.Is(err, account.ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}

	longest := strings.Repeat("p", account.MaxPasswordBytes)
	hash, err := h.Hash(longest)
	if err != nil {
		t.Fatalf("Hash returned error for %d bytes: %v", account.MaxPasswordBytes, err)
	}
	if !h.Compare(longest, hash) {
		t.Fatal("expected longest allowed password to match its hash")
	}
}

func TestBcryptHasher_AccountRegisterRejectsLongPassword(t *testing.T) {
	t.Parallel()

	photos := &countingPhotoStore{}
	svc := account.NewService(account.Dependencies{
		Repo:   &emptyUserRepo{},
		Hasher: NewBcryptHasher(bcrypt.MinCost),
		Tokens: newTestIssuer(t, time.Now()),
		Photos: photos,
	})

	_, err := svc.Register(context.Background(), account.RegisterInput{
		Fullname:    "Alice",
		Email:       "a@x.com",
		PhoneNumber: "555-0100",
		Password:    strings.Repeat("p", account.MaxPasswordBytes+1),
		Role:        "applicant",
		Photo:       &account.Photo{Filename: "a.png", Content: strings.NewReader("png")},
	})
	if !errors.Is(err, account.ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
	if photos.uploads != 0 {
		t.Fatalf("expected no upload, got %d", photos.uploads)
	}
}

type countingPhotoStore struct {
	uploads int
}

func (s *countingPhotoStore) Upload(context.Context, account.Photo) (string, error) {
	s.uploads++
	return "https://cdn.example.com/a.png", nil
}

type emptyUserRepo struct{}

func (emptyUserRepo) Create(_ context.Context, u *account.User) (*account.User, error) {
	return u, nil
}

func (emptyUserRepo) Update(_ context.Context, u *account.User) (*account.User, error) {
	return u, nil
}

func (emptyUserRepo) FindByID(context.Context, string) (*account.User, error) {
	return nil, account.ErrUserNotFound
}

func (emptyUserRepo) FindByEmail(context.Context, string) (*account.User, error) {
	return nil, account.ErrUserNotFound
}
