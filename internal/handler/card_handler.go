package handler

import (
	"net/http"

	"flowboard/internal/service"

	"github.com/gin-gonic/gin"
)

type CardHandler struct {
	cards *service.CardService
}

func NewCardHandler(cards *service.CardService) *CardHandler {
	return &CardHandler{cards: cards}
}

type CreateCardRequest struct {
	Title     string  `json:"title" binding:"required"`
	Content   *string `json:"content"`
	ListID    string  `json:"list_id" binding:"required,uuid"`
	BoardSlug string  `json:"board_slug" binding:"required"`
}

type MoveCardRequest struct {
	ListID string `json:"list_id" binding:"required,uuid"`
}

type ReorderCardsRequest struct {
	OrderedCardIDs []string `json:"ordered_card_ids"`
}

type UpdatePriorityRequest struct {
	Priority string `json:"priority" binding:"required"`
}

type UpdateContentRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// Create appends a card to the end of a list
// @Summary  Create a card
// @Tags     Cards
// @Accept   json
// @Produce  json
// @Param    request body CreateCardRequest true "Card data"
// @Success  201 {object} CardResponse
// @Security BearerAuth
// @Router   /cards [post]
func (h *CardHandler) Create(c *gin.Context) {
	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	card, err := h.cards.CreateCard(c.Request.Context(), service.CreateCardInput{
		Title:     req.Title,
		Content:   req.Content,
		ListID:    req.ListID,
		BoardSlug: req.BoardSlug,
	})
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCardResponse(*card))
}

// Move reassigns a card to another list, appending it at the end
// @Summary  Move a card to another list
// @Tags     Cards
// @Accept   json
// @Produce  json
// @Param    id path string true "Card ID"
// @Param    request body MoveCardRequest true "Target list"
// @Success  200 {object} CardResponse
// @Security BearerAuth
// @Router   /cards/{id}/move [post]
func (h *CardHandler) Move(c *gin.Context) {
	var req MoveCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	card, err := h.cards.MoveCardToColumn(c.Request.Context(), c.Param("id"), req.ListID)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCardResponse(*card))
}

// Reorder densely renumbers a list to the submitted card sequence
// @Summary  Reorder the cards of a list
// @Tags     Cards
// @Accept   json
// @Produce  json
// @Param    id path string true "List ID"
// @Param    request body ReorderCardsRequest true "Desired card sequence"
// @Success  200 {array} CardResponse
// @Security BearerAuth
// @Router   /lists/{id}/reorder [post]
func (h *CardHandler) Reorder(c *gin.Context) {
	var req ReorderCardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	cards, err := h.cards.ReorderCardsInList(c.Request.Context(), c.Param("id"), req.OrderedCardIDs)
	if err != nil {
		serviceError(c, err)
		return
	}

	response := make([]CardResponse, len(cards))
	for i, card := range cards {
		response[i] = toCardResponse(card)
	}
	c.JSON(http.StatusOK, response)
}

// UpdatePriority sets a card's priority
// @Summary  Update card priority
// @Tags     Cards
// @Accept   json
// @Produce  json
// @Param    id path string true "Card ID"
// @Param    request body UpdatePriorityRequest true "New priority"
// @Success  200 {object} CardResponse
// @Security BearerAuth
// @Router   /cards/{id}/priority [patch]
func (h *CardHandler) UpdatePriority(c *gin.Context) {
	var req UpdatePriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	card, err := h.cards.UpdateCardPriority(c.Request.Context(), c.Param("id"), req.Priority)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCardResponse(*card))
}

// UpdateContent writes only the provided fields of a card
// @Summary  Update card title/content
// @Tags     Cards
// @Accept   json
// @Produce  json
// @Param    id path string true "Card ID"
// @Param    request body UpdateContentRequest true "Fields to update"
// @Success  200 {object} CardResponse
// @Security BearerAuth
// @Router   /cards/{id} [patch]
func (h *CardHandler) UpdateContent(c *gin.Context) {
	var req UpdateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	card, err := h.cards.UpdateCardContent(c.Request.Context(), c.Param("id"), service.UpdateCardContentInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCardResponse(*card))
}
