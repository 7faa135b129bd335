package api

import (
	"go-task-board/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	boardService *service.BoardService
}

func NewBoardHandler(boardService *service.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

func (h *BoardHandler) CreateBoard(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	var req service.CreateBoardRequest
	if !bindJSON(c, &req) {
		return
	}

	board, err := h.boardService.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Board created successfully",
		"board":   board,
	})
}

func (h *BoardHandler) GetUserBoards(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	boards, err := h.boardService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"boards": boards})
}

func (h *BoardHandler) GetBoard(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	boardID, ok := getIDParam(c, "board_id")
	if !ok {
		return
	}

	board, err := h.boardService.Get(c.Request.Context(), boardID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"board": board})
}

func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	boardID, ok := getIDParam(c, "board_id")
	if !ok {
		return
	}

	var req service.UpdateBoardRequest
	if !bindJSON(c, &req) {
		return
	}

	board, err := h.boardService.Update(c.Request.Context(), boardID, userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"board": board})
}

// 删除看板及其下全部内容
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	boardID, ok := getIDParam(c, "board_id")
	if !ok {
		return
	}

	if err := h.boardService.Delete(c.Request.Context(), boardID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BoardHandler) GetMembers(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	boardID, ok := getIDParam(c, "board_id")
	if !ok {
		return
	}

	members, err := h.boardService.Members(c.Request.Context(), boardID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	membersResponse := make([]gin.H, 0, len(members))
	for _, m := range members {
		membersResponse = append(membersResponse, gin.H{
			"user_id":   m.UserID,
			"name":      m.User.Name,
			"nickname":  m.User.Nickname,
			"email":     m.User.Email,
			"role":      m.Role,
			"joined_at": m.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"members": membersResponse})
}

// 通过邮箱邀请成员
func (h *BoardHandler) AddMember(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	boardID, ok := getIDParam(c, "board_id")
	if !ok {
		return
	}

	var req service.AddMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.boardService.AddMember(c.Request.Context(), boardID, userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Member added successfully",
		"member": gin.H{
			"user_id": member.UserID,
			"role":    member.Role,
		},
	})
}

func (h *BoardHandler) RemoveMember(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	boardID, ok := getIDParam(c, "board_id")
	if !ok {
		return
	}
	targetID, ok := getIDParam(c, "user_id")
	if !ok {
		return
	}

	if err := h.boardService.RemoveMember(c.Request.Context(), boardID, userID, targetID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
