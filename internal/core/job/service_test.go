package job

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeRepo struct {
	jobs map[string]*Job
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return nil, ErrJobNotFound
	}
	copy := *j
	copy.ApplicationIDs = append([]string(nil), j.ApplicationIDs...)
	return &copy, nil
}

func (r *fakeRepo) AppendApplication(_ context.Context, jobID, applicationID string, at time.Time) error {
	j, ok := r.jobs[jobID]
	if !ok {
		return ErrJobNotFound
	}
	j.ApplicationIDs = append(j.ApplicationIDs, applicationID)
	j.UpdatedAt = at
	return nil
}

const jobID = "7d8c6a2e-5d0b-4b7c-8a8e-0c5b6a1f2e33"

func TestService_GetJob(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{jobs: map[string]*Job{
		jobID: {ID: jobID, Title: "Backend Engineer", ApplicationIDs: []string{"a-1"}},
	}}
	svc := NewService(repo, nil)

	found, err := svc.GetJob(context.Background(), " "+jobID)
	if err != nil {
		t.Fatalf("GetJob returned error: %v", err)
	}
	if found.Title != "Backend Engineer" || len(found.ApplicationIDs) != 1 {
		t.Fatalf("unexpected job: %+v", found)
	}
}

func TestService_GetJob_Errors(t *testing.T) {
	t.Parallel()

	svc := NewService(&fakeRepo{jobs: map[string]*Job{}}, nil)

	if _, err := svc.GetJob(context.Background(), "not-a-uuid"); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	if _, err := svc.GetJob(context.Background(), jobID); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}
