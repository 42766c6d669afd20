package gateway

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/go-scaffold/go-scaffold/internal/db/models"
)

// UserFilter narrows listing and counting operations.
type UserFilter struct {
	ActiveOnly bool
}

// CreateUser stores a new active user. The email must not be in use.
func (g *Gateway) CreateUser(ctx context.Context, name, email string) (*models.User, error) {
	if name == "" {
		return nil, errors.Wrap(ErrInvalidInput, "name can not be empty")
	}

	if email == "" {
		return nil, errors.Wrap(ErrInvalidInput, "email can not be empty")
	}

	db, err := g.handle(true)
	if err != nil {
		return nil, err
	}

	// Check whether the email is taken before inserting; the unique
	// index backstops concurrent creates.
	existing, err := g.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	user := &models.User{
		Name:   name,
		Email:  email,
		Active: true,
	}

	err = g.withRetry(ctx, func() error {
		return db.WithContext(ctx).Create(user).Error //nolint:wrapcheck
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}

		return nil, err
	}

	return user, nil
}

// FindUserByID returns the user, or nil when no row matches. Absence is
// not an error.
func (g *Gateway) FindUserByID(ctx context.Context, id uint64) (*models.User, error) {
	return g.findUser(ctx, "id = ?", id)
}

// FindUserByEmail returns the user with the exact email, or nil.
func (g *Gateway) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return g.findUser(ctx, "email = ?", email)
}

func (g *Gateway) findUser(ctx context.Context, query string, arg any) (*models.User, error) {
	db, err := g.handle(true)
	if err != nil {
		return nil, err
	}

	var user models.User

	err = g.withRetry(ctx, func() error {
		return db.WithContext(ctx).Where(query, arg).First(&user).Error //nolint:wrapcheck
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

// ListUsers returns users ordered by creation time, newest first; ties
// are broken by ascending id.
func (g *Gateway) ListUsers(ctx context.Context, filter *UserFilter) ([]models.User, error) {
	db, err := g.handle(true)
	if err != nil {
		return nil, err
	}

	var users []models.User

	err = g.withRetry(ctx, func() error {
		q := db.WithContext(ctx).Order("created_at DESC, id ASC")
		if filter != nil && filter.ActiveOnly {
			q = q.Where("active = ?", true)
		}

		users = users[:0]

		return q.Find(&users).Error //nolint:wrapcheck
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}

// CountUsers returns the number of users matching the filter.
func (g *Gateway) CountUsers(ctx context.Context, filter *UserFilter) (int64, error) {
	db, err := g.handle(true)
	if err != nil {
		return 0, err
	}

	var count int64

	err = g.withRetry(ctx, func() error {
		q := db.WithContext(ctx).Model(&models.User{})
		if filter != nil && filter.ActiveOnly {
			q = q.Where("active = ?", true)
		}

		return q.Count(&count).Error //nolint:wrapcheck
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

// ActivateUser marks the user active. updated_at is bumped even when
// the user already was active.
func (g *Gateway) ActivateUser(ctx context.Context, id uint64) (*models.User, error) {
	return g.setActive(ctx, id, true)
}

// DeactivateUser marks the user inactive. updated_at is bumped even
// when the user already was inactive.
func (g *Gateway) DeactivateUser(ctx context.Context, id uint64) (*models.User, error) {
	return g.setActive(ctx, id, false)
}

func (g *Gateway) setActive(ctx context.Context, id uint64, active bool) (*models.User, error) {
	db, err := g.handle(true)
	if err != nil {
		return nil, err
	}

	err = g.withRetry(ctx, func() error {
		// write both columns unconditionally so a no-op toggle still
		// bumps the timestamp
		result := db.WithContext(ctx).
			Model(&models.User{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"active":     active,
				"updated_at": time.Now().UTC(),
			})
		if result.Error != nil {
			return result.Error //nolint:wrapcheck
		}

		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	user, err := g.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, ErrNotFound
	}

	return user, nil
}

// DeleteUser removes the row permanently. There is no soft delete.
func (g *Gateway) DeleteUser(ctx context.Context, id uint64) error {
	db, err := g.handle(true)
	if err != nil {
		return err
	}

	return g.withRetry(ctx, func() error {
		result := db.WithContext(ctx).Delete(&models.User{}, id)
		if result.Error != nil {
			return result.Error //nolint:wrapcheck
		}

		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		return nil
	})
}
