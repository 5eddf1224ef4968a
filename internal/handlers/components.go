package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"designvault/api/internal/apperr"
	"designvault/api/internal/models"
	"designvault/api/internal/service"
)

func (h HandlerSet) ListComponents(c *gin.Context) {
	input := service.ListComponentsInput{
		Type:      c.Query("type"),
		Status:    c.Query("status"),
		Search:    c.Query("search"),
		Page:      intQuery(c, "page", 1),
		Limit:     intQuery(c, "limit", 10),
		SortBy:    c.DefaultQuery("sortBy", "createdAt"),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
	}

	if tags := c.Query("tags"); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				input.Tags = append(input.Tags, tag)
			}
		}
	}

	page, err := h.components.List(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"components": page.Components,
		"pagination": page.Pagination,
	})
}

func (h HandlerSet) GetComponent(c *gin.Context) {
	component, err := h.components.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, component)
}

type createComponentRequest struct {
	Name         string                       `json:"name"`
	Type         string                       `json:"type"`
	Description  string                       `json:"description"`
	Styles       models.ComponentStyles       `json:"styles"`
	Code         models.ComponentCode         `json:"code"`
	Examples     []models.ComponentExample    `json:"examples"`
	Tags         []string                     `json:"tags"`
	Status       string                       `json:"status"`
	Version      string                       `json:"version"`
	Dependencies []models.ComponentDependency `json:"dependencies"`
}

func (h HandlerSet) CreateComponent(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		abortNoUser(c)
		return
	}

	var req createComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperr.Validation("Invalid request body"))
		return
	}

	component, err := h.components.Create(c.Request.Context(), user, service.CreateComponentInput{
		Name:         req.Name,
		Type:         req.Type,
		Description:  req.Description,
		Styles:       req.Styles,
		Code:         req.Code,
		Examples:     req.Examples,
		Tags:         req.Tags,
		Status:       req.Status,
		Version:      req.Version,
		Dependencies: req.Dependencies,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, component)
}

type updateComponentRequest struct {
	Name         *string                       `json:"name"`
	Type         *string                       `json:"type"`
	Description  *string                       `json:"description"`
	Styles       *models.ComponentStyles       `json:"styles"`
	Code         *models.ComponentCode         `json:"code"`
	Examples     *[]models.ComponentExample    `json:"examples"`
	Tags         *[]string                     `json:"tags"`
	Status       *string                       `json:"status"`
	Version      *string                       `json:"version"`
	Dependencies *[]models.ComponentDependency `json:"dependencies"`
}

func (h HandlerSet) UpdateComponent(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		abortNoUser(c)
		return
	}

	var req updateComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperr.Validation("Invalid request body"))
		return
	}

	component, err := h.components.Update(c.Request.Context(), user, c.Param("id"), service.UpdateComponentInput{
		Name:         req.Name,
		Type:         req.Type,
		Description:  req.Description,
		Styles:       req.Styles,
		Code:         req.Code,
		Examples:     req.Examples,
		Tags:         req.Tags,
		Status:       req.Status,
		Version:      req.Version,
		Dependencies: req.Dependencies,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, component)
}

func (h HandlerSet) DeleteComponent(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		abortNoUser(c)
		return
	}

	if err := h.components.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Component deleted successfully"})
}

func (h HandlerSet) ComponentsByType(c *gin.Context) {
	components, err := h.components.ListByType(c.Request.Context(), c.Param("type"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, components)
}

func (h HandlerSet) SearchComponents(c *gin.Context) {
	components, err := h.components.SearchByText(c.Request.Context(), c.Param("query"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, components)
}

func (h HandlerSet) ComponentStats(c *gin.Context) {
	stats, err := h.components.Stats(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
