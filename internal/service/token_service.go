package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"designvault/api/internal/apperr"
	"designvault/api/internal/ids"
	"designvault/api/internal/models"
	"designvault/api/internal/repository"
)

type TokenService struct {
	tokens repository.TokenRepository
	log    zerolog.Logger
}

func NewTokenService(tokens repository.TokenRepository, log zerolog.Logger) *TokenService {
	return &TokenService{
		tokens: tokens,
		log:    log.With().Str("service", "tokens").Logger(),
	}
}

// Pagination is the offset-based listing envelope for token queries.
type Pagination struct {
	Current int `json:"current"`
	Pages   int `json:"pages"`
	Total   int `json:"total"`
}

type ListTokensInput struct {
	Category  string
	Search    string
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

type TokenPage struct {
	Tokens     []models.DesignToken
	Pagination Pagination
}

func (s *TokenService) List(ctx context.Context, input ListTokensInput) (TokenPage, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 20
	}
	if input.SortBy == "" {
		input.SortBy = "createdAt"
	}

	filter := repository.TokenFilter{
		Category: input.Category,
		Search:   input.Search,
		SortBy:   input.SortBy,
		SortDesc: input.SortOrder != "asc",
		Limit:    input.Limit,
		Offset:   (input.Page - 1) * input.Limit,
	}

	tokens, total, err := s.tokens.List(ctx, filter)
	if err != nil {
		return TokenPage{}, apperr.Internal(err)
	}

	return TokenPage{
		Tokens: tokens,
		Pagination: Pagination{
			Current: input.Page,
			Pages:   pageCount(total, input.Limit),
			Total:   total,
		},
	}, nil
}

func (s *TokenService) Get(ctx context.Context, id string) (models.DesignToken, error) {
	if !ids.Valid(id) {
		return models.DesignToken{}, apperr.Validation("Invalid token ID format")
	}

	token, err := s.tokens.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return models.DesignToken{}, apperr.NotFound("Design token not found")
		}
		return models.DesignToken{}, apperr.Internal(err)
	}
	return token, nil
}

type CreateTokenInput struct {
	Name        string
	Category    string
	Value       string
	Description string
	Tags        []string
	Theme       string
	LightValue  string
	DarkValue   string
	Status      string
}

func (s *TokenService) Create(ctx context.Context, caller models.User, input CreateTokenInput) (models.DesignToken, error) {
	if input.Name == "" || input.Category == "" || input.Value == "" {
		return models.DesignToken{}, apperr.Validation("Name, category, and value are required")
	}
	if !ids.Valid(caller.ID) {
		return models.DesignToken{}, apperr.Auth("Invalid user authentication - please log in again")
	}

	now := time.Now().UTC()
	token := models.DesignToken{
		ID:          ids.New(),
		Name:        input.Name,
		Category:    input.Category,
		Value:       input.Value,
		Description: input.Description,
		Tags:        input.Tags,
		Theme:       models.TokenTheme(input.Theme),
		LightValue:  input.LightValue,
		DarkValue:   input.DarkValue,
		Status:      models.TokenStatus(input.Status),
		CreatedBy:   models.Creator{ID: caller.ID, Username: caller.Username},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if token.Tags == nil {
		token.Tags = []string{}
	}
	if token.Theme == "" {
		token.Theme = models.TokenThemeAll
	}
	if token.Status == "" {
		token.Status = models.TokenStatusActive
	}

	if err := s.tokens.Create(ctx, token); err != nil {
		return models.DesignToken{}, apperr.Internal(err)
	}

	s.log.Info().Str("token_id", token.ID).Str("name", token.Name).Msg("design token created")
	return token, nil
}

// UpdateTokenInput distinguishes omitted fields (nil) from explicitly
// provided ones. Description, lightValue and darkValue are cleared by an
// explicit empty string; the remaining fields keep their previous value
// unless a non-empty replacement arrives.
type UpdateTokenInput struct {
	Name        *string
	Category    *string
	Value       *string
	Description *string
	Tags        *[]string
	Theme       *string
	LightValue  *string
	DarkValue   *string
	Status      *string
}

func (s *TokenService) Update(ctx context.Context, caller models.User, id string, input UpdateTokenInput) (models.DesignToken, error) {
	if !ids.Valid(id) {
		return models.DesignToken{}, apperr.Validation("Invalid token ID format")
	}

	token, err := s.tokens.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return models.DesignToken{}, apperr.NotFound("Design token not found")
		}
		return models.DesignToken{}, apperr.Internal(err)
	}

	if token.CreatedBy.ID != caller.ID && caller.Role != models.UserRoleAdmin {
		return models.DesignToken{}, apperr.Permission("Permission denied")
	}

	if input.Name != nil && *input.Name != "" {
		token.Name = *input.Name
	}
	if input.Category != nil && *input.Category != "" {
		token.Category = *input.Category
	}
	if input.Value != nil && *input.Value != "" {
		token.Value = *input.Value
	}
	if input.Description != nil {
		token.Description = *input.Description
	}
	if input.Tags != nil {
		token.Tags = *input.Tags
	}
	if input.Theme != nil && *input.Theme != "" {
		token.Theme = models.TokenTheme(*input.Theme)
	}
	if input.LightValue != nil {
		token.LightValue = *input.LightValue
	}
	if input.DarkValue != nil {
		token.DarkValue = *input.DarkValue
	}
	if input.Status != nil && *input.Status != "" {
		token.Status = models.TokenStatus(*input.Status)
	}
	token.UpdatedAt = time.Now().UTC()

	if err := s.tokens.Update(ctx, token); err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return models.DesignToken{}, apperr.NotFound("Design token not found")
		}
		return models.DesignToken{}, apperr.Internal(err)
	}
	return token, nil
}

func (s *TokenService) Delete(ctx context.Context, id string) error {
	if !ids.Valid(id) {
		return apperr.Validation("Invalid token ID format")
	}

	if err := s.tokens.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return apperr.NotFound("Design token not found")
		}
		return apperr.Internal(err)
	}

	s.log.Info().Str("token_id", id).Msg("design token deleted")
	return nil
}

// TokenUploadEntry is one item of a bulk upload. Only the basic fields are
// taken from bulk payloads; theme and status fall back to their defaults.
type TokenUploadEntry struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Value       string   `json:"value"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

type BulkUploadSuccess struct {
	Index int                `json:"index"`
	Token models.DesignToken `json:"token"`
}

type BulkUploadSkip struct {
	Index  int              `json:"index"`
	Data   TokenUploadEntry `json:"data"`
	Reason string           `json:"reason"`
}

type BulkUploadError struct {
	Index int              `json:"index"`
	Data  TokenUploadEntry `json:"data"`
	Error string           `json:"error"`
}

type BulkUploadResult struct {
	Success []BulkUploadSuccess `json:"success"`
	Errors  []BulkUploadError   `json:"errors"`
	Skipped []BulkUploadSkip    `json:"skipped"`
}

func (r BulkUploadResult) Message() string {
	return fmt.Sprintf("Upload complete. %d created, %d skipped, %d errors",
		len(r.Success), len(r.Skipped), len(r.Errors))
}

// BulkUpload processes each entry independently: a bad entry lands in the
// errors bucket, a duplicate name in skipped, and neither aborts the rest.
func (s *TokenService) BulkUpload(ctx context.Context, caller models.User, entries []TokenUploadEntry) (BulkUploadResult, error) {
	if !ids.Valid(caller.ID) {
		return BulkUploadResult{}, apperr.Auth("Invalid user authentication - please log in again")
	}

	result := BulkUploadResult{
		Success: []BulkUploadSuccess{},
		Errors:  []BulkUploadError{},
		Skipped: []BulkUploadSkip{},
	}

	for i, entry := range entries {
		if entry.Name == "" || entry.Category == "" || entry.Value == "" {
			result.Errors = append(result.Errors, BulkUploadError{
				Index: i,
				Data:  entry,
				Error: "Missing required fields: name, category, value",
			})
			continue
		}

		if _, err := s.tokens.FindByName(ctx, entry.Name); err == nil {
			result.Skipped = append(result.Skipped, BulkUploadSkip{
				Index:  i,
				Data:   entry,
				Reason: fmt.Sprintf("Token '%s' already exists", entry.Name),
			})
			continue
		} else if !errors.Is(err, repository.ErrTokenNotFound) {
			result.Errors = append(result.Errors, BulkUploadError{
				Index: i,
				Data:  entry,
				Error: err.Error(),
			})
			continue
		}

		tags := entry.Tags
		if tags == nil {
			tags = []string{}
		}
		now := time.Now().UTC()
		token := models.DesignToken{
			ID:          ids.New(),
			Name:        entry.Name,
			Category:    entry.Category,
			Value:       entry.Value,
			Description: entry.Description,
			Tags:        tags,
			Theme:       models.TokenThemeAll,
			Status:      models.TokenStatusActive,
			CreatedBy:   models.Creator{ID: caller.ID, Username: caller.Username},
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := s.tokens.Create(ctx, token); err != nil {
			result.Errors = append(result.Errors, BulkUploadError{
				Index: i,
				Data:  entry,
				Error: err.Error(),
			})
			continue
		}

		result.Success = append(result.Success, BulkUploadSuccess{Index: i, Token: token})
	}

	s.log.Info().
		Int("created", len(result.Success)).
		Int("skipped", len(result.Skipped)).
		Int("errors", len(result.Errors)).
		Msg("bulk upload complete")

	return result, nil
}

func pageCount(total, limit int) int {
	if limit < 1 {
		return 0
	}
	return (total + limit - 1) / limit
}
