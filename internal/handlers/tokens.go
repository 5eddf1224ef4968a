package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"designvault/api/internal/apperr"
	"designvault/api/internal/service"
)

func (h HandlerSet) ListTokens(c *gin.Context) {
	input := service.ListTokensInput{
		Category:  c.Query("category"),
		Search:    c.Query("search"),
		Page:      intQuery(c, "page", 1),
		Limit:     intQuery(c, "limit", 20),
		SortBy:    c.DefaultQuery("sortBy", "createdAt"),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
	}

	page, err := h.tokens.List(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tokens":     page.Tokens,
		"pagination": page.Pagination,
	})
}

func (h HandlerSet) GetToken(c *gin.Context) {
	token, err := h.tokens.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, token)
}

type createTokenRequest struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Value       string   `json:"value"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Theme       string   `json:"theme"`
	LightValue  string   `json:"lightValue"`
	DarkValue   string   `json:"darkValue"`
	Status      string   `json:"status"`
}

func (h HandlerSet) CreateToken(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		abortNoUser(c)
		return
	}

	var req createTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperr.Validation("Invalid request body"))
		return
	}

	token, err := h.tokens.Create(c.Request.Context(), user, service.CreateTokenInput{
		Name:        req.Name,
		Category:    req.Category,
		Value:       req.Value,
		Description: req.Description,
		Tags:        req.Tags,
		Theme:       req.Theme,
		LightValue:  req.LightValue,
		DarkValue:   req.DarkValue,
		Status:      req.Status,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, token)
}

// updateTokenRequest keeps omitted fields nil so the merge can tell an
// explicitly cleared value from an untouched one.
type updateTokenRequest struct {
	Name        *string   `json:"name"`
	Category    *string   `json:"category"`
	Value       *string   `json:"value"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
	Theme       *string   `json:"theme"`
	LightValue  *string   `json:"lightValue"`
	DarkValue   *string   `json:"darkValue"`
	Status      *string   `json:"status"`
}

func (h HandlerSet) UpdateToken(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		abortNoUser(c)
		return
	}

	var req updateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperr.Validation("Invalid request body"))
		return
	}

	token, err := h.tokens.Update(c.Request.Context(), user, c.Param("id"), service.UpdateTokenInput{
		Name:        req.Name,
		Category:    req.Category,
		Value:       req.Value,
		Description: req.Description,
		Tags:        req.Tags,
		Theme:       req.Theme,
		LightValue:  req.LightValue,
		DarkValue:   req.DarkValue,
		Status:      req.Status,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, token)
}

func (h HandlerSet) DeleteToken(c *gin.Context) {
	if err := h.tokens.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Design token deleted successfully"})
}

type bulkUploadRequest struct {
	Tokens []service.TokenUploadEntry `json:"tokens"`
}

func (h HandlerSet) BulkUploadTokens(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		abortNoUser(c)
		return
	}

	var req bulkUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Tokens == nil {
		h.writeError(c, apperr.Validation(`Invalid format. Expected { "tokens": [...] }`))
		return
	}

	result, err := h.tokens.BulkUpload(c.Request.Context(), user, req.Tokens)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": result.Message(),
		"results": result,
	})
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
