package api

import (
	"go-task-board/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ListHandler struct {
	listService *service.ListService
}

func NewListHandler(listService *service.ListService) *ListHandler {
	return &ListHandler{listService: listService}
}

func (h *ListHandler) CreateList(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	boardID, ok := getIDParam(c, "board_id")
	if !ok {
		return
	}

	var req service.CreateListRequest
	if !bindJSON(c, &req) {
		return
	}

	list, err := h.listService.Create(c.Request.Context(), boardID, userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"list": list})
}

func (h *ListHandler) GetBoardLists(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	boardID, ok := getIDParam(c, "board_id")
	if !ok {
		return
	}

	lists, err := h.listService.ListByBoard(c.Request.Context(), boardID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lists": lists})
}

func (h *ListHandler) GetList(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	listID, ok := getIDParam(c, "list_id")
	if !ok {
		return
	}

	list, err := h.listService.Get(c.Request.Context(), listID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *ListHandler) UpdateList(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	listID, ok := getIDParam(c, "list_id")
	if !ok {
		return
	}

	var req service.UpdateListRequest
	if !bindJSON(c, &req) {
		return
	}

	list, err := h.listService.Update(c.Request.Context(), listID, userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *ListHandler) DeleteList(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	listID, ok := getIDParam(c, "list_id")
	if !ok {
		return
	}

	if err := h.listService.Delete(c.Request.Context(), listID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
