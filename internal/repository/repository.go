package repository

import (
	"context"
	"errors"

	"designvault/api/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrTokenNotFound     = errors.New("design token not found")
	ErrComponentNotFound = errors.New("component not found")
)

// TokenFilter narrows and orders a design-token listing. SortBy takes the
// API-level field name (createdAt, name, ...); unknown names fall back to
// createdAt.
type TokenFilter struct {
	Category string
	Search   string
	SortBy   string
	SortDesc bool
	Limit    int
	Offset   int
}

// ComponentFilter is the component-side counterpart. Search is combined with
// the other filters via logical AND; Tags matches "any of".
type ComponentFilter struct {
	Type     string
	Status   string
	Tags     []string
	Search   string
	SortBy   string
	SortDesc bool
	Limit    int
	Offset   int
}

type UserRepository interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByEmailOrUsername(ctx context.Context, email, username string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
}

type TokenRepository interface {
	Create(ctx context.Context, token models.DesignToken) error
	GetByID(ctx context.Context, id string) (models.DesignToken, error)
	FindByName(ctx context.Context, name string) (models.DesignToken, error)
	List(ctx context.Context, filter TokenFilter) ([]models.DesignToken, int, error)
	Update(ctx context.Context, token models.DesignToken) error
	Delete(ctx context.Context, id string) error
}

type ComponentRepository interface {
	Create(ctx context.Context, component models.Component) error
	GetByID(ctx context.Context, id string) (models.Component, error)
	FindByName(ctx context.Context, name string) (models.Component, error)
	List(ctx context.Context, filter ComponentFilter) ([]models.Component, int, error)
	Update(ctx context.Context, component models.Component) error
	Delete(ctx context.Context, id string) error
	ListByType(ctx context.Context, componentType string) ([]models.Component, error)
	SearchByText(ctx context.Context, query string) ([]models.Component, error)
	Stats(ctx context.Context) (models.ComponentStats, error)
}
