// Package storetest opens throwaway sqlite stores for tests.
package storetest

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"

	"github.com/Big-jpg/swipehire/internal/models"
	"github.com/Big-jpg/swipehire/internal/store"
)

// New returns a migrated in-memory store that is closed when the test ends.
func New(t testing.TB) *store.Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	s, err := store.Open(&store.Config{Driver: store.DriverSQLite, DSN: dsn}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return s
}

// User creates a user with the given external id.
func User(t testing.TB, s *store.Store, externalID string) *models.User {
	t.Helper()

	user, err := s.EnsureUser(context.Background(), externalID, "", "", "")
	if err != nil {
		t.Fatalf("ensure user: %v", err)
	}
	return user
}

// Job inserts job and returns it with its id set.
func Job(t testing.TB, s *store.Store, job models.Job) *models.Job {
	t.Helper()

	if job.CompanyName == "" {
		job.CompanyName = "Acme"
	}
	if err := s.CreateJob(context.Background(), &job); err != nil {
		t.Fatalf("create job %q: %v", job.Title, err)
	}
	return &job
}

func Ptr[T any](v T) *T {
	return &v
}
