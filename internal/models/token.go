package models

import "time"

type TokenTheme string

const (
	TokenThemeLight TokenTheme = "light"
	TokenThemeDark  TokenTheme = "dark"
	TokenThemeAll   TokenTheme = "all"
)

type TokenStatus string

const (
	TokenStatusActive     TokenStatus = "active"
	TokenStatusDraft      TokenStatus = "draft"
	TokenStatusDeprecated TokenStatus = "deprecated"
)

// DesignToken is a named design value (color, spacing, typography and the
// like) with optional per-theme overrides.
type DesignToken struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Value       string      `json:"value"`
	Description string      `json:"description"`
	Tags        []string    `json:"tags"`
	Theme       TokenTheme  `json:"theme"`
	LightValue  string      `json:"lightValue"`
	DarkValue   string      `json:"darkValue"`
	Status      TokenStatus `json:"status"`
	CreatedBy   Creator     `json:"createdBy"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}
