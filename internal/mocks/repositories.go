package mocks

import (
	"context"
	"sort"
	"strings"

	"designvault/api/internal/models"
	"designvault/api/internal/repository"
)

// In-memory repository implementations for service and handler tests. List
// semantics (filter, sort, offset pagination, text match) mirror the SQL
// implementations closely enough for contract tests.

type MockUserRepository struct {
	Users       map[string]models.User
	CreateError error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[string]models.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, user models.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Users[user.ID] = user
	return nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	for _, user := range m.Users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (m *MockUserRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (models.User, error) {
	for _, user := range m.Users {
		if user.Email == email || user.Username == username {
			return user, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	user, ok := m.Users[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

type MockTokenRepository struct {
	Tokens      map[string]models.DesignToken
	CreateError error
	UpdateError error
}

func NewMockTokenRepository() *MockTokenRepository {
	return &MockTokenRepository{Tokens: make(map[string]models.DesignToken)}
}

func (m *MockTokenRepository) Create(ctx context.Context, token models.DesignToken) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Tokens[token.ID] = token
	return nil
}

func (m *MockTokenRepository) GetByID(ctx context.Context, id string) (models.DesignToken, error) {
	token, ok := m.Tokens[id]
	if !ok {
		return models.DesignToken{}, repository.ErrTokenNotFound
	}
	return token, nil
}

func (m *MockTokenRepository) FindByName(ctx context.Context, name string) (models.DesignToken, error) {
	for _, token := range m.Tokens {
		if token.Name == name {
			return token, nil
		}
	}
	return models.DesignToken{}, repository.ErrTokenNotFound
}

func (m *MockTokenRepository) List(ctx context.Context, filter repository.TokenFilter) ([]models.DesignToken, int, error) {
	var matched []models.DesignToken
	for _, token := range m.Tokens {
		if filter.Category != "" && token.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !textMatch(filter.Search, token.Name, token.Description, token.Tags) {
			continue
		}
		matched = append(matched, token)
	}

	sortTokens(matched, filter.SortBy, filter.SortDesc)
	total := len(matched)
	return pageSlice(matched, filter.Offset, filter.Limit), total, nil
}

func (m *MockTokenRepository) Update(ctx context.Context, token models.DesignToken) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.Tokens[token.ID]; !ok {
		return repository.ErrTokenNotFound
	}
	m.Tokens[token.ID] = token
	return nil
}

func (m *MockTokenRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.Tokens[id]; !ok {
		return repository.ErrTokenNotFound
	}
	delete(m.Tokens, id)
	return nil
}

type MockComponentRepository struct {
	Components  map[string]models.Component
	CreateError error
	StatsCalls  int
}

func NewMockComponentRepository() *MockComponentRepository {
	return &MockComponentRepository{Components: make(map[string]models.Component)}
}

func (m *MockComponentRepository) Create(ctx context.Context, component models.Component) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Components[component.ID] = component
	return nil
}

func (m *MockComponentRepository) GetByID(ctx context.Context, id string) (models.Component, error) {
	component, ok := m.Components[id]
	if !ok {
		return models.Component{}, repository.ErrComponentNotFound
	}
	return component, nil
}

func (m *MockComponentRepository) FindByName(ctx context.Context, name string) (models.Component, error) {
	for _, component := range m.Components {
		if component.Name == name {
			return component, nil
		}
	}
	return models.Component{}, repository.ErrComponentNotFound
}

func (m *MockComponentRepository) List(ctx context.Context, filter repository.ComponentFilter) ([]models.Component, int, error) {
	var matched []models.Component
	for _, component := range m.Components {
		if filter.Type != "" && string(component.Type) != filter.Type {
			continue
		}
		if filter.Status != "" && string(component.Status) != filter.Status {
			continue
		}
		if len(filter.Tags) > 0 && !anyTagMatch(filter.Tags, component.Tags) {
			continue
		}
		if filter.Search != "" && !textMatch(filter.Search, component.Name, component.Description, component.Tags) {
			continue
		}
		matched = append(matched, component)
	}

	sortComponents(matched, filter.SortBy, filter.SortDesc)
	total := len(matched)
	return pageSlice(matched, filter.Offset, filter.Limit), total, nil
}

func (m *MockComponentRepository) Update(ctx context.Context, component models.Component) error {
	if _, ok := m.Components[component.ID]; !ok {
		return repository.ErrComponentNotFound
	}
	m.Components[component.ID] = component
	return nil
}

func (m *MockComponentRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.Components[id]; !ok {
		return repository.ErrComponentNotFound
	}
	delete(m.Components, id)
	return nil
}

func (m *MockComponentRepository) ListByType(ctx context.Context, componentType string) ([]models.Component, error) {
	var matched []models.Component
	for _, component := range m.Components {
		if string(component.Type) == componentType && component.Status == models.ComponentStatusActive {
			matched = append(matched, component)
		}
	}
	sortComponents(matched, "createdAt", true)
	return matched, nil
}

func (m *MockComponentRepository) SearchByText(ctx context.Context, query string) ([]models.Component, error) {
	var matched []models.Component
	for _, component := range m.Components {
		if textMatch(query, component.Name, component.Description, component.Tags) {
			matched = append(matched, component)
		}
	}
	sortComponents(matched, "createdAt", true)
	return matched, nil
}

func (m *MockComponentRepository) Stats(ctx context.Context) (models.ComponentStats, error) {
	m.StatsCalls++
	stats := models.ComponentStats{
		TypeCounts:   make(map[string]int),
		StatusCounts: make(map[string]int),
	}
	for _, component := range m.Components {
		stats.Total++
		stats.TypeCounts[string(component.Type)]++
		stats.StatusCounts[string(component.Status)]++
	}
	return stats, nil
}

// textMatch approximates AND-of-terms full-text search: every query term
// must appear, case-insensitively, in the name, description or tags.
func textMatch(query, name, description string, tags []string) bool {
	haystack := strings.ToLower(name + " " + description + " " + strings.Join(tags, " "))
	for _, term := range strings.Fields(strings.ToLower(query)) {
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}

func anyTagMatch(wanted, have []string) bool {
	for _, w := range wanted {
		for _, t := range have {
			if w == t {
				return true
			}
		}
	}
	return false
}

func sortTokens(tokens []models.DesignToken, sortBy string, desc bool) {
	sort.SliceStable(tokens, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "name":
			less = tokens[i].Name < tokens[j].Name
		case "category":
			less = tokens[i].Category < tokens[j].Category
		default:
			less = tokens[i].CreatedAt.Before(tokens[j].CreatedAt)
		}
		if desc {
			return !less
		}
		return less
	})
}

func sortComponents(components []models.Component, sortBy string, desc bool) {
	sort.SliceStable(components, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "name":
			less = components[i].Name < components[j].Name
		default:
			less = components[i].CreatedAt.Before(components[j].CreatedAt)
		}
		if desc {
			return !less
		}
		return less
	})
}

func pageSlice[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
