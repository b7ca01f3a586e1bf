package handler

import (
	"net/http"
	"time"

	"flowboard/internal/boardcache"
	"flowboard/internal/model"
	"flowboard/internal/service"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	boards *service.BoardService
	cache  *boardcache.Cache
}

func NewBoardHandler(boards *service.BoardService, cache *boardcache.Cache) *BoardHandler {
	return &BoardHandler{boards: boards, cache: cache}
}

type CreateBoardRequest struct {
	Title string `json:"title" binding:"required"`
	Slug  string `json:"slug" binding:"required"`
}

type CardResponse struct {
	ID        string  `json:"id"`
	ListID    string  `json:"list_id"`
	Title     string  `json:"title"`
	Content   *string `json:"content,omitempty"`
	Order     int     `json:"order"`
	Priority  string  `json:"priority"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type ListResponse struct {
	ID        string         `json:"id"`
	BoardID   string         `json:"board_id"`
	Title     string         `json:"title"`
	Type      string         `json:"type"`
	Order     int            `json:"order"`
	Collapsed bool           `json:"collapsed"`
	Cards     []CardResponse `json:"cards"`
}

type BoardResponse struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Slug      string         `json:"slug"`
	OwnerID   string         `json:"owner_id"`
	CreatedAt string         `json:"created_at"`
	Lists     []ListResponse `json:"lists,omitempty"`
}

func toCardResponse(card model.Card) CardResponse {
	return CardResponse{
		ID:        card.ID.String(),
		ListID:    card.ListID.String(),
		Title:     card.Title,
		Content:   card.Content,
		Order:     card.Order,
		Priority:  card.Priority,
		CreatedAt: card.CreatedAt.Format(time.RFC3339),
		UpdatedAt: card.UpdatedAt.Format(time.RFC3339),
	}
}

func toBoardResponse(board *model.Board) BoardResponse {
	resp := BoardResponse{
		ID:        board.ID.String(),
		Title:     board.Title,
		Slug:      board.Slug,
		OwnerID:   board.OwnerID.String(),
		CreatedAt: board.CreatedAt.Format(time.RFC3339),
	}
	for _, list := range board.Lists {
		lr := ListResponse{
			ID:        list.ID.String(),
			BoardID:   list.BoardID.String(),
			Title:     list.Title,
			Type:      list.Type,
			Order:     list.Order,
			Collapsed: list.Collapsed,
			Cards:     make([]CardResponse, 0, len(list.Cards)),
		}
		for _, card := range list.Cards {
			lr.Cards = append(lr.Cards, toCardResponse(card))
		}
		resp.Lists = append(resp.Lists, lr)
	}
	return resp
}

// Create creates a board with its template lists and seed cards
// @Summary  Create a board
// @Tags     Boards
// @Accept   json
// @Produce  json
// @Param    request body CreateBoardRequest true "Board data"
// @Success  201 {object} BoardResponse
// @Security BearerAuth
// @Router   /boards [post]
func (h *BoardHandler) Create(c *gin.Context) {
	if _, ok := actorID(c); !ok {
		return
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board, err := h.boards.CreateBoard(c.Request.Context(), service.CreateBoardInput{
		Title: req.Title,
		Slug:  req.Slug,
	})
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBoardResponse(board))
}

// GetAll lists the boards owned by the authenticated user
// @Summary  List boards
// @Tags     Boards
// @Produce  json
// @Success  200 {array} BoardResponse
// @Security BearerAuth
// @Router   /boards [get]
func (h *BoardHandler) GetAll(c *gin.Context) {
	ownerID, ok := actorID(c)
	if !ok {
		return
	}

	boards, err := h.boards.GetUserBoards(c.Request.Context(), ownerID)
	if err != nil {
		serviceError(c, err)
		return
	}

	response := make([]BoardResponse, len(boards))
	for i := range boards {
		response[i] = toBoardResponse(&boards[i])
	}

	c.JSON(http.StatusOK, response)
}

// GetBySlug returns a board with its ordered lists and cards
// @Summary  Get a board by slug
// @Tags     Boards
// @Produce  json
// @Param    slug path string true "Board slug"
// @Success  200 {object} BoardResponse
// @Security BearerAuth
// @Router   /boards/{slug} [get]
func (h *BoardHandler) GetBySlug(c *gin.Context) {
	ownerID, ok := actorID(c)
	if !ok {
		return
	}

	slug := c.Param("slug")

	// Read-through: the projection stays fresh for a bounded TTL and is
	// evicted by the revalidation hook after mutations.
	if board, ok := h.cache.Get(ownerID, slug); ok {
		c.JSON(http.StatusOK, toBoardResponse(board))
		return
	}

	board, err := h.boards.GetBoardBySlug(c.Request.Context(), ownerID, slug)
	if err != nil {
		serviceError(c, err)
		return
	}
	h.cache.Put(board)

	c.JSON(http.StatusOK, toBoardResponse(board))
}
