package models

import "time"

type ComponentType string

const (
	ComponentTypeButton     ComponentType = "button"
	ComponentTypeInput      ComponentType = "input"
	ComponentTypeCard       ComponentType = "card"
	ComponentTypeModal      ComponentType = "modal"
	ComponentTypeNavigation ComponentType = "navigation"
	ComponentTypeForm       ComponentType = "form"
	ComponentTypeLayout     ComponentType = "layout"
	ComponentTypeTypography ComponentType = "typography"
	ComponentTypeIcon       ComponentType = "icon"
	ComponentTypeOther      ComponentType = "other"
)

// ValidComponentType reports whether t is a known component type.
func ValidComponentType(t ComponentType) bool {
	switch t {
	case ComponentTypeButton, ComponentTypeInput, ComponentTypeCard,
		ComponentTypeModal, ComponentTypeNavigation, ComponentTypeForm,
		ComponentTypeLayout, ComponentTypeTypography, ComponentTypeIcon,
		ComponentTypeOther:
		return true
	}
	return false
}

type ComponentStatus string

const (
	ComponentStatusDraft      ComponentStatus = "draft"
	ComponentStatusActive     ComponentStatus = "active"
	ComponentStatusDeprecated ComponentStatus = "deprecated"
)

type ComponentStyles struct {
	CSS     string `json:"css,omitempty"`
	SCSS    string `json:"scss,omitempty"`
	CSSInJS string `json:"cssInJs,omitempty"`
}

type ComponentCode struct {
	HTML    string `json:"html,omitempty"`
	React   string `json:"react,omitempty"`
	Vue     string `json:"vue,omitempty"`
	Angular string `json:"angular,omitempty"`
}

type ComponentExample struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Code        string `json:"code,omitempty"`
	Preview     string `json:"preview,omitempty"`
}

type ComponentDependency struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Component is a reusable UI element's metadata record: code snippets per
// framework, styling variants, usage examples, and versioned dependencies.
type Component struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Type         ComponentType         `json:"type"`
	Description  string                `json:"description"`
	Styles       ComponentStyles       `json:"styles"`
	Code         ComponentCode         `json:"code"`
	Examples     []ComponentExample    `json:"examples"`
	Tags         []string              `json:"tags"`
	Status       ComponentStatus       `json:"status"`
	Version      string                `json:"version"`
	Dependencies []ComponentDependency `json:"dependencies"`
	CreatedBy    Creator               `json:"createdBy"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

// ComponentStats is the aggregate overview of the component library.
type ComponentStats struct {
	Total        int            `json:"total"`
	TypeCounts   map[string]int `json:"typeCounts"`
	StatusCounts map[string]int `json:"statusCounts"`
}
