package company

import (
	"context"
	"errors"
	"testing"
)

type fakeRepo struct {
	companies map[string]*Company
	calls     int
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*Company, error) {
	r.calls++
	c, ok := r.companies[id]
	if !ok {
		return nil, ErrCompanyNotFound
	}
	copy := *c
	return &copy, nil
}

type recordingTx struct {
	readOnly int
}

func (r *recordingTx) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	r.readOnly++
	return fn(ctx)
}

const acmeID = "2b1f7f0e-3f0a-4c43-9f77-8a0f5a0c1d11"

func TestService_GetCompany_Success(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{companies: map[string]*Company{
		acmeID: {ID: acmeID, Name: "Acme", Logo: "https://cdn.example.com/acme.png"},
	}}
	tx := &recordingTx{}
	svc := NewService(repo, tx)

	found, err := svc.GetCompany(context.Background(), GetCompanyInput{ID: "  " + acmeID + " "})
	if err != nil {
		t.Fatalf("GetCompany returned error: %v", err)
	}

	if found.Name != "Acme" {
		t.Errorf("expected Acme, got %s", found.Name)
	}
	if tx.readOnly != 1 {
		t.Errorf("expected lookup inside a read-only transaction, got %d", tx.readOnly)
	}
}

func TestService_GetCompany_InvalidID(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{companies: map[string]*Company{}}
	svc := NewService(repo, nil)

	for _, id := range []string{"", "   ", "company-1"} {
		if _, err := svc.GetCompany(context.Background(), GetCompanyInput{ID: id}); !errors.Is(err, ErrInvalidID) {
			t.Fatalf("expected ErrInvalidID for %q, got %v", id, err)
		}
	}
	if repo.calls != 0 {
		t.Fatalf("repository must not be queried for invalid ids")
	}
}

func TestService_GetCompany_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewService(&fakeRepo{companies: map[string]*Company{}}, nil)

	if _, err := svc.GetCompany(context.Background(), GetCompanyInput{ID: acmeID}); !errors.Is(err, ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound, got %v", err)
	}
}
