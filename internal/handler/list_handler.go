package handler

import (
	"net/http"

	"flowboard/internal/service"

	"github.com/gin-gonic/gin"
)

type ListHandler struct {
	lists *service.ListService
}

func NewListHandler(lists *service.ListService) *ListHandler {
	return &ListHandler{lists: lists}
}

type ToggleCollapsedRequest struct {
	Collapsed *bool  `json:"collapsed" binding:"required"`
	BoardSlug string `json:"board_slug"`
}

// ToggleCollapsed hides or restores a list
// @Summary  Toggle list collapsed state
// @Tags     Lists
// @Accept   json
// @Produce  json
// @Param    id path string true "List ID"
// @Param    request body ToggleCollapsedRequest true "Collapsed state"
// @Success  200 {object} map[string]interface{}
// @Security BearerAuth
// @Router   /lists/{id}/collapsed [patch]
func (h *ListHandler) ToggleCollapsed(c *gin.Context) {
	var req ToggleCollapsedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	list, err := h.lists.ToggleListCollapsed(c.Request.Context(), service.ToggleListCollapsedInput{
		ListID:    c.Param("id"),
		Collapsed: *req.Collapsed,
		BoardSlug: req.BoardSlug,
	})
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        list.ID,
		"collapsed": list.Collapsed,
	})
}
