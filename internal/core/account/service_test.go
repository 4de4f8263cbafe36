package account

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

type stubClock struct {
	now time.Time
}

func (s stubClock) Now() time.Time {
	return s.now
}

type fakeRepo struct {
	users map[string]*User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[string]*User)}
}

func (r *fakeRepo) Create(_ context.Context, user *User) (*User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, ErrEmailAlreadyExists
		}
	}
	copy := *user
	copy.ID = uuid.NewString()
	r.users[copy.ID] = &copy
	return copy.Sanitized(), nil
}

func (r *fakeRepo) Update(_ context.Context, user *User) (*User, error) {
	existing, ok := r.users[user.ID]
	if !ok {
		return nil, ErrUserNotFound
	}
	*existing = *user
	return existing.Sanitized(), nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copy := *u
	return &copy, nil
}

func (r *fakeRepo) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, ErrUserNotFound
}

// fakeHasher は決定的なハッシュを返すテスト用実装です。
type fakeHasher struct {
	compares int
	err      error
}

func (h *fakeHasher) Hash(plain string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	return "hashed:" + plain, nil
}

func (h *fakeHasher) Compare(plain, hash string) bool {
	h.compares++
	return hash == "hashed:"+plain
}

type fakeTokens struct {
	issued []string
}

func (f *fakeTokens) Issue(userID string) (Token, error) {
	f.issued = append(f.issued, userID)
	return Token{Value: "token-for-" + userID, ExpiresAt: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)}, nil
}

type fakePhotos struct {
	uploads []string
	err     error
}

func (f *fakePhotos) Upload(_ context.Context, photo Photo) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploads = append(f.uploads, photo.Filename)
	return "https://cdn.example.com/" + photo.Filename, nil
}

type recordingNotifier struct {
	welcomed []string
}

func (n *recordingNotifier) SendWelcome(_ context.Context, to, username string) {
	n.welcomed = append(n.welcomed, to+"|"+username)
}

type fixture struct {
	svc      *Service
	repo     *fakeRepo
	hasher   *fakeHasher
	tokens   *fakeTokens
	photos   *fakePhotos
	notifier *recordingNotifier
	now      time.Time
}

func newFixture() *fixture {
	f := &fixture{
		repo:     newFakeRepo(),
		hasher:   &fakeHasher{},
		tokens:   &fakeTokens{},
		photos:   &fakePhotos{},
		notifier: &recordingNotifier{},
		now:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	f.svc = NewService(Dependencies{
		Repo:     f.repo,
		Hasher:   f.hasher,
		Tokens:   f.tokens,
		Photos:   f.photos,
		Notifier: f.notifier,
		Clock:    stubClock{now: f.now},
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return f
}

func photo(name string) *Photo {
	return &Photo{Filename: name, ContentType: "image/png", Content: strings.NewReader("png")}
}

func aliceInput() RegisterInput {
	return RegisterInput{
		Fullname:    "Alice",
		Email:       "a@x.com",
		PhoneNumber: "555-0100",
		Password:    "pw123",
		Role:        "applicant",
		Photo:       photo("alice.png"),
	}
}

func TestService_Register_Success(t *testing.T) {
	t.Parallel()

	f := newFixture()
	in := aliceInput()
	in.Email = " A@X.com "

	created, err := f.svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if created.Email != "a@x.com" {
		t.Errorf("expected normalized email, got %s", created.Email)
	}
	if created.Role != RoleApplicant {
		t.Errorf("expected applicant role, got %s", created.Role)
	}
	if created.Profile.ProfilePhoto != "https://cdn.example.com/alice.png" {
		t.Errorf("unexpected profile photo %s", created.Profile.ProfilePhoto)
	}
	if created.PasswordHash != "" {
		t.Error("expected password hash not to be returned")
	}
	if !created.CreatedAt.Equal(f.now) {
		t.Errorf("unexpected created at %v", created.CreatedAt)
	}

	stored := f.repo.users[created.ID]
	if stored.PasswordHash == "pw123" {
		t.Fatal("expected stored password to differ from plaintext")
	}
	if !f.hasher.Compare("pw123", stored.PasswordHash) {
		t.Fatal("expected stored hash to match plaintext")
	}
	if len(f.notifier.welcomed) != 1 || f.notifier.welcomed[0] != "a@x.com|Alice" {
		t.Fatalf("expected welcome mail, got %v", f.notifier.welcomed)
	}
}

func TestService_Register_MissingFields(t *testing.T) {
	t.Parallel()

	cases := map[string]func(*RegisterInput){
		"fullname": func(in *RegisterInput) { in.Fullname = " " },
		"email":    func(in *RegisterInput) { in.Email = "" },
		"phone":    func(in *RegisterInput) { in.PhoneNumber = "" },
		"password": func(in *RegisterInput) { in.Password = "" },
		"role":     func(in *RegisterInput) { in.Role = "" },
		"photo":    func(in *RegisterInput) { in.Photo = nil },
	}

	for name, mutate := range cases {
		name, mutate := name, mutate
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f := newFixture()
			in := aliceInput()
			mutate(&in)

			if _, err := f.svc.Register(context.Background(), in); !errors.Is(err, ErrMissingFields) {
				t.Fatalf("expected ErrMissingFields, got %v", err)
			}
			if len(f.repo.users) != 0 || len(f.photos.uploads) != 0 {
				t.Fatal("expected nothing to be stored or uploaded")
			}
		})
	}
}

func TestService_Register_ValidationErrors(t *testing.T) {
	t.Parallel()

	f := newFixture()

	in := aliceInput()
	in.Email = "not-an-email"
	if _, err := f.svc.Register(context.Background(), in); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}

	in = aliceInput()
	in.Role = "admin"
	if _, err := f.svc.Register(context.Background(), in); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	f := newFixture()
	if _, err := f.svc.Register(context.Background(), aliceInput()); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}

	in := aliceInput()
	in.Email = "A@x.com"
	in.Photo = photo("second.png")
	if _, err := f.svc.Register(context.Background(), in); !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
	if len(f.photos.uploads) != 1 {
		t.Fatalf("expected duplicate to be rejected before upload, got %v", f.photos.uploads)
	}
}

func TestService_Register_PasswordTooLong(t *testing.T) {
	t.Parallel()

	f := newFixture()
	in := aliceInput()
	in.Password = strings.Repeat("p", MaxPasswordBytes+1)

	if _, err := f.svc.Register(context.Background(), in); !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
	if len(f.photos.uploads) != 0 || len(f.repo.users) != 0 {
		t.Fatalf("expected nothing uploaded or stored, got uploads=%v users=%d", f.photos.uploads, len(f.repo.users))
	}

	in.Password = strings.Repeat("p", MaxPasswordBytes)
	if _, err := f.svc.Register(context.Background(), in); err != nil {
		t.Fatalf("expected %d byte password to be accepted, got %v", MaxPasswordBytes, err)
	}
}

func TestService_Register_HashFailureSkipsUpload(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.hasher.err = errors.New("hasher broken")

	if _, err := f.svc.Register(context.Background(), aliceInput()); err == nil {
		t.Fatal("expected hash error")
	}
	if len(f.photos.uploads) != 0 {
		t.Fatalf("expected no upload, got %v", f.photos.uploads)
	}
	if len(f.repo.users) != 0 {
		t.Fatal("expected no user to be stored")
	}
}

func TestService_Register_UploadFailure(t *testing.T) {
	t.Parallel()

	f := newFixture()
	f.photos.err = errors.New("cloudinary unavailable")

	if _, err := f.svc.Register(context.Background(), aliceInput()); err == nil {
		t.Fatal("expected upload error")
	}
	if len(f.repo.users) != 0 {
		t.Fatal("expected no user to be stored")
	}
	if len(f.notifier.welcomed) != 0 {
		t.Fatal("expected no welcome mail")
	}
}

func TestService_Login_Success(t *testing.T) {
	t.Parallel()

	f := newFixture()
	created, err := f.svc.Register(context.Background(), aliceInput())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	session, err := f.svc.Login(context.Background(), LoginInput{Email: "a@x.com", Password: "pw123", Role: "applicant"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if session.User.ID != created.ID || session.User.Fullname != "Alice" {
		t.Fatalf("unexpected session user: %+v", session.User)
	}
	if session.User.PasswordHash != "" {
		t.Fatal("expected session user to be sanitized")
	}
	if session.Token != "token-for-"+created.ID {
		t.Fatalf("unexpected token %s", session.Token)
	}
}

func TestService_Login_InvalidCredentialsAreUniform(t *testing.T) {
	t.Parallel()

	f := newFixture()
	if _, err := f.svc.Register(context.Background(), aliceInput()); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	cases := map[string]LoginInput{
		"unknown email":  {Email: "nobody@x.com", Password: "pw123", Role: "applicant"},
		"wrong password": {Email: "a@x.com", Password: "nope", Role: "applicant"},
		"wrong role":     {Email: "a@x.com", Password: "pw123", Role: "recruiter"},
	}

	var messages []string
	for name, in := range cases {
		_, err := f.svc.Login(context.Background(), in)
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("%s: expected ErrInvalidCredentials, got %v", name, err)
		}
		messages = append(messages, err.Error())
	}

	for _, msg := range messages {
		if msg != messages[0] {
			t.Fatalf("expected identical messages, got %v", messages)
		}
	}
	if len(f.tokens.issued) != 0 {
		t.Fatalf("expected no tokens to be issued, got %v", f.tokens.issued)
	}
}

func TestService_Login_UnknownUserStillComparesHash(t *testing.T) {
	t.Parallel()

	f := newFixture()
	_, _ = f.svc.Login(context.Background(), LoginInput{Email: "ghost@x.com", Password: "pw", Role: "applicant"})

	if f.hasher.compares != 1 {
		t.Fatalf("expected one hash comparison, got %d", f.hasher.compares)
	}
}

func TestService_Login_MissingFields(t *testing.T) {
	t.Parallel()

	f := newFixture()
	if _, err := f.svc.Login(context.Background(), LoginInput{Email: "a@x.com", Password: "pw123"}); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestService_UpdateProfile_PartialUpdate(t *testing.T) {
	t.Parallel()

	f := newFixture()
	created, err := f.svc.Register(context.Background(), aliceInput())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	bio := "Gopher"
	skills := "go, sql , ,go,k8s"
	empty := ""
	updated, err := f.svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID:   created.ID,
		Fullname: &empty,
		Bio:      &bio,
		Skills:   &skills,
	})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}

	if updated.Fullname != "Alice" {
		t.Errorf("expected fullname to be kept, got %s", updated.Fullname)
	}
	if updated.Profile.Bio != "Gopher" {
		t.Errorf("unexpected bio %s", updated.Profile.Bio)
	}
	want := []string{"go", "sql", "k8s"}
	if strings.Join(updated.Profile.Skills, ",") != strings.Join(want, ",") {
		t.Errorf("expected skills %v, got %v", want, updated.Profile.Skills)
	}
	if updated.Profile.ProfilePhoto != "https://cdn.example.com/alice.png" {
		t.Errorf("expected photo to be kept, got %s", updated.Profile.ProfilePhoto)
	}
}

func TestService_UpdateProfile_PhotoAndEmail(t *testing.T) {
	t.Parallel()

	f := newFixture()
	alice, _ := f.svc.Register(context.Background(), aliceInput())

	bob := aliceInput()
	bob.Fullname = "Bob"
	bob.Email = "b@x.com"
	if _, err := f.svc.Register(context.Background(), bob); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	taken := "B@x.com"
	if _, err := f.svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: alice.ID, Email: &taken}); !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}

	fresh := "alice@new.example"
	updated, err := f.svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID: alice.ID,
		Email:  &fresh,
		Photo:  photo("alice-2.png"),
	})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if updated.Email != "alice@new.example" {
		t.Errorf("unexpected email %s", updated.Email)
	}
	if updated.Profile.ProfilePhoto != "https://cdn.example.com/alice-2.png" {
		t.Errorf("expected replaced photo, got %s", updated.Profile.ProfilePhoto)
	}
}

func TestService_UpdateProfile_Errors(t *testing.T) {
	t.Parallel()

	f := newFixture()

	if _, err := f.svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: "nope"}); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	if _, err := f.svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: uuid.NewString(), Photo: photo("x.png")}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if len(f.photos.uploads) != 0 {
		t.Fatal("expected no upload for unknown user")
	}
}

func TestService_GetUser(t *testing.T) {
	t.Parallel()

	f := newFixture()
	created, _ := f.svc.Register(context.Background(), aliceInput())

	found, err := f.svc.GetUser(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetUser returned error: %v", err)
	}
	if found.Email != "a@x.com" {
		t.Fatalf("unexpected user %+v", found)
	}

	if _, err := f.svc.GetUser(context.Background(), uuid.NewString()); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestParseRole(t *testing.T) {
	t.Parallel()

	if r, ok := ParseRole(" Recruiter "); !ok || r != RoleRecruiter {
		t.Fatalf("expected recruiter, got %q %v", r, ok)
	}
	if _, ok := ParseRole("admin"); ok {
		t.Fatal("expected admin to be rejected")
	}
}
