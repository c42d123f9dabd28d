package store

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm/clause"

	"github.com/Big-jpg/swipehire/internal/models"
)

// EnsureUser returns the user with the given external id, creating it when
// missing. Non-empty name, email and role are written on every call.
func (s *Store) EnsureUser(ctx context.Context, externalID, name, email, role string) (*models.User, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, fmt.Errorf("external id is required")
	}

	attrs := map[string]any{}
	for column, value := range map[string]string{"name": name, "email": email, "role": role} {
		if value = strings.TrimSpace(value); value != "" {
			attrs[column] = value
		}
	}

	q := s.db.WithContext(ctx).Where(models.User{ExternalID: externalID})
	if len(attrs) > 0 {
		q = q.Assign(attrs)
	}

	var user models.User
	err := q.FirstOrCreate(&user).Error
	if err != nil {
		return nil, fmt.Errorf("ensure user %q: %w", externalID, err)
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	return &user, nil
}

func (s *Store) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &user, nil
}

// LockUser serializes writers of one user's swipe rows. On postgres the user
// row is held FOR UPDATE until the surrounding transaction ends; sqlite
// already has a single writer.
func (s *Store) LockUser(ctx context.Context, id uint) error {
	q := s.db.WithContext(ctx).Select("id")
	if s.driver == DriverPostgres {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var user models.User
	if err := q.First(&user, id).Error; err != nil {
		return notFound(err, "user")
	}
	return nil
}
