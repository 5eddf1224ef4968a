package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"designvault/api/internal/apperr"
	"designvault/api/internal/cache"
	"designvault/api/internal/ids"
	"designvault/api/internal/models"
	"designvault/api/internal/repository"
)

type ComponentService struct {
	components repository.ComponentRepository
	stats      *cache.StatsCache
	log        zerolog.Logger
}

func NewComponentService(components repository.ComponentRepository, stats *cache.StatsCache, log zerolog.Logger) *ComponentService {
	return &ComponentService{
		components: components,
		stats:      stats,
		log:        log.With().Str("service", "components").Logger(),
	}
}

// ComponentPagination mirrors the listing envelope the component routes have
// always returned; it differs in shape from the token one.
type ComponentPagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type ListComponentsInput struct {
	Type      string
	Status    string
	Tags      []string
	Search    string
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

type ComponentPage struct {
	Components []models.Component
	Pagination ComponentPagination
}

func (s *ComponentService) List(ctx context.Context, input ListComponentsInput) (ComponentPage, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 10
	}
	if input.SortBy == "" {
		input.SortBy = "createdAt"
	}

	filter := repository.ComponentFilter{
		Type:     input.Type,
		Status:   input.Status,
		Tags:     input.Tags,
		Search:   input.Search,
		SortBy:   input.SortBy,
		SortDesc: input.SortOrder != "asc",
		Limit:    input.Limit,
		Offset:   (input.Page - 1) * input.Limit,
	}

	components, total, err := s.components.List(ctx, filter)
	if err != nil {
		return ComponentPage{}, apperr.Internal(err)
	}

	return ComponentPage{
		Components: components,
		Pagination: ComponentPagination{
			Page:  input.Page,
			Limit: input.Limit,
			Total: total,
			Pages: pageCount(total, input.Limit),
		},
	}, nil
}

func (s *ComponentService) Get(ctx context.Context, id string) (models.Component, error) {
	component, err := s.components.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrComponentNotFound) {
			return models.Component{}, apperr.NotFound("Component not found")
		}
		return models.Component{}, apperr.Internal(err)
	}
	return component, nil
}

type CreateComponentInput struct {
	Name         string
	Type         string
	Description  string
	Styles       models.ComponentStyles
	Code         models.ComponentCode
	Examples     []models.ComponentExample
	Tags         []string
	Status       string
	Version      string
	Dependencies []models.ComponentDependency
}

func (s *ComponentService) Create(ctx context.Context, caller models.User, input CreateComponentInput) (models.Component, error) {
	if input.Name == "" || input.Type == "" {
		return models.Component{}, apperr.Validation("Name and type are required")
	}
	if !models.ValidComponentType(models.ComponentType(input.Type)) {
		return models.Component{}, apperr.Validation("Invalid component type")
	}

	if _, err := s.components.FindByName(ctx, input.Name); err == nil {
		return models.Component{}, apperr.Conflict("Component with this name already exists")
	} else if !errors.Is(err, repository.ErrComponentNotFound) {
		return models.Component{}, apperr.Internal(err)
	}

	now := time.Now().UTC()
	component := models.Component{
		ID:           ids.New(),
		Name:         input.Name,
		Type:         models.ComponentType(input.Type),
		Description:  input.Description,
		Styles:       input.Styles,
		Code:         input.Code,
		Examples:     input.Examples,
		Tags:         input.Tags,
		Status:       models.ComponentStatus(input.Status),
		Version:      input.Version,
		Dependencies: input.Dependencies,
		CreatedBy:    models.Creator{ID: caller.ID, Username: caller.Username},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if component.Examples == nil {
		component.Examples = []models.ComponentExample{}
	}
	if component.Tags == nil {
		component.Tags = []string{}
	}
	if component.Dependencies == nil {
		component.Dependencies = []models.ComponentDependency{}
	}
	if component.Status == "" {
		component.Status = models.ComponentStatusDraft
	}
	if component.Version == "" {
		component.Version = "1.0.0"
	}

	if err := s.components.Create(ctx, component); err != nil {
		return models.Component{}, apperr.Internal(err)
	}

	s.invalidateStats(ctx)
	s.log.Info().Str("component_id", component.ID).Str("name", component.Name).Msg("component created")
	return component, nil
}

// UpdateComponentInput replaces any provided top-level field wholly; nested
// styles and code objects are not deep-merged.
type UpdateComponentInput struct {
	Name         *string
	Type         *string
	Description  *string
	Styles       *models.ComponentStyles
	Code         *models.ComponentCode
	Examples     *[]models.ComponentExample
	Tags         *[]string
	Status       *string
	Version      *string
	Dependencies *[]models.ComponentDependency
}

func (s *ComponentService) Update(ctx context.Context, caller models.User, id string, input UpdateComponentInput) (models.Component, error) {
	component, err := s.components.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrComponentNotFound) {
			return models.Component{}, apperr.NotFound("Component not found")
		}
		return models.Component{}, apperr.Internal(err)
	}

	// Strictly creator-only; admins get no override here, unlike tokens.
	if component.CreatedBy.ID != caller.ID {
		return models.Component{}, apperr.Permission("Not authorized to update this component")
	}

	if input.Name != nil {
		component.Name = *input.Name
	}
	if input.Type != nil {
		if !models.ValidComponentType(models.ComponentType(*input.Type)) {
			return models.Component{}, apperr.Validation("Invalid component type")
		}
		component.Type = models.ComponentType(*input.Type)
	}
	if input.Description != nil {
		component.Description = *input.Description
	}
	if input.Styles != nil {
		component.Styles = *input.Styles
	}
	if input.Code != nil {
		component.Code = *input.Code
	}
	if input.Examples != nil {
		component.Examples = *input.Examples
	}
	if input.Tags != nil {
		component.Tags = *input.Tags
	}
	if input.Status != nil {
		component.Status = models.ComponentStatus(*input.Status)
	}
	if input.Version != nil {
		component.Version = *input.Version
	}
	if input.Dependencies != nil {
		component.Dependencies = *input.Dependencies
	}
	component.UpdatedAt = time.Now().UTC()

	if err := s.components.Update(ctx, component); err != nil {
		if errors.Is(err, repository.ErrComponentNotFound) {
			return models.Component{}, apperr.NotFound("Component not found")
		}
		return models.Component{}, apperr.Internal(err)
	}

	s.invalidateStats(ctx)
	return component, nil
}

func (s *ComponentService) Delete(ctx context.Context, caller models.User, id string) error {
	component, err := s.components.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrComponentNotFound) {
			return apperr.NotFound("Component not found")
		}
		return apperr.Internal(err)
	}

	if component.CreatedBy.ID != caller.ID {
		return apperr.Permission("Not authorized to delete this component")
	}

	if err := s.components.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrComponentNotFound) {
			return apperr.NotFound("Component not found")
		}
		return apperr.Internal(err)
	}

	s.invalidateStats(ctx)
	s.log.Info().Str("component_id", id).Msg("component deleted")
	return nil
}

func (s *ComponentService) ListByType(ctx context.Context, componentType string) ([]models.Component, error) {
	components, err := s.components.ListByType(ctx, componentType)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return components, nil
}

func (s *ComponentService) SearchByText(ctx context.Context, query string) ([]models.Component, error) {
	components, err := s.components.SearchByText(ctx, query)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return components, nil
}

// Stats serves the cached overview when available; a miss or a cache failure
// falls through to the aggregate query.
func (s *ComponentService) Stats(ctx context.Context) (models.ComponentStats, error) {
	if stats, err := s.stats.Get(ctx); err == nil {
		return stats, nil
	}

	stats, err := s.components.Stats(ctx)
	if err != nil {
		return models.ComponentStats{}, apperr.Internal(err)
	}

	if err := s.stats.Set(ctx, stats); err != nil {
		s.log.Warn().Err(err).Msg("stats cache write failed")
	}
	return stats, nil
}

// RefreshStats recomputes the overview and rewrites the cache. Called by the
// background scheduler.
func (s *ComponentService) RefreshStats(ctx context.Context) error {
	stats, err := s.components.Stats(ctx)
	if err != nil {
		return err
	}
	return s.stats.Set(ctx, stats)
}

func (s *ComponentService) invalidateStats(ctx context.Context) {
	if err := s.stats.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("stats cache invalidation failed")
	}
}
