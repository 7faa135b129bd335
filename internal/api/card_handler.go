package api

import (
	"go-task-board/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type CardHandler struct {
	cardService *service.CardService
}

func NewCardHandler(cardService *service.CardService) *CardHandler {
	return &CardHandler{cardService: cardService}
}

func (h *CardHandler) CreateCard(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	listID, ok := getIDParam(c, "list_id")
	if !ok {
		return
	}

	var req service.CreateCardRequest
	if !bindJSON(c, &req) {
		return
	}

	card, err := h.cardService.Create(c.Request.Context(), listID, userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"card": card})
}

func (h *CardHandler) GetListCards(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	listID, ok := getIDParam(c, "list_id")
	if !ok {
		return
	}

	cards, err := h.cardService.ListByList(c.Request.Context(), listID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cards": cards})
}

func (h *CardHandler) GetCard(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	cardID, ok := getIDParam(c, "card_id")
	if !ok {
		return
	}

	card, err := h.cardService.Get(c.Request.Context(), cardID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"card": card})
}

// 部分更新卡片, 未提供的字段保持不变
func (h *CardHandler) UpdateCard(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	cardID, ok := getIDParam(c, "card_id")
	if !ok {
		return
	}

	var req service.UpdateCardRequest
	if !bindJSON(c, &req) {
		return
	}

	card, err := h.cardService.Update(c.Request.Context(), cardID, userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"card": card})
}

func (h *CardHandler) DeleteCard(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	cardID, ok := getIDParam(c, "card_id")
	if !ok {
		return
	}

	if err := h.cardService.Delete(c.Request.Context(), cardID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
