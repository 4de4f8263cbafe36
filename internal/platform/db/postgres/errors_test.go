package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestConstraintViolation(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("insert: %w", &pgconn.PgError{Code: CodeUniqueViolation, ConstraintName: "applications_job_id_applicant_id_key"})

	code, constraint, ok := ConstraintViolation(wrapped)
	if !ok {
		t.Fatal("expected wrapped unique violation to be detected")
	}
	if code != CodeUniqueViolation || constraint != "applications_job_id_applicant_id_key" {
		t.Fatalf("unexpected result: code=%s constraint=%s", code, constraint)
	}

	if _, _, ok := ConstraintViolation(&pgconn.PgError{Code: "40001"}); ok {
		t.Fatal("serialization failure must not be reported as constraint violation")
	}

	if _, _, ok := ConstraintViolation(errors.New("random")); ok {
		t.Fatal("plain error must not be reported as constraint violation")
	}
}
