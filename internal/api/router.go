package api

import (
	"go-task-board/internal/metrics"
	"go-task-board/internal/middleware"
	"go-task-board/internal/repository"
	"go-task-board/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 注册全部路由
func NewRouter(store *repository.Store) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.GinZapLogger(), metrics.Middleware())

	userService := service.NewUserService(store)
	authHandler := NewAuthHandler(userService)
	userHandler := NewUserHandler(userService)
	boardHandler := NewBoardHandler(service.NewBoardService(store))
	listHandler := NewListHandler(service.NewListService(store))
	cardHandler := NewCardHandler(service.NewCardService(store))
	commentHandler := NewCommentHandler(service.NewCommentService(store))

	r.GET("/healthz", func(c *gin.Context) {
		if sqlDB, err := store.DB().DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 公开路由
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// 受保护的路由
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware(userService))
	{
		protected.GET("/users/me", userHandler.Me)
		protected.PATCH("/users/me", userHandler.UpdateMe)
		protected.DELETE("/users/me", userHandler.DeleteMe)

		protected.POST("/boards", boardHandler.CreateBoard)
		protected.GET("/boards", boardHandler.GetUserBoards)
		protected.GET("/boards/:board_id", boardHandler.GetBoard)
		protected.PATCH("/boards/:board_id", boardHandler.UpdateBoard)
		protected.DELETE("/boards/:board_id", boardHandler.DeleteBoard)
		protected.GET("/boards/:board_id/members", boardHandler.GetMembers)
		protected.POST("/boards/:board_id/members", boardHandler.AddMember)
		protected.DELETE("/boards/:board_id/members/:user_id", boardHandler.RemoveMember)

		protected.POST("/boards/:board_id/lists", listHandler.CreateList)
		protected.GET("/boards/:board_id/lists", listHandler.GetBoardLists)
		protected.GET("/lists/:list_id", listHandler.GetList)
		protected.PATCH("/lists/:list_id", listHandler.UpdateList)
		protected.DELETE("/lists/:list_id", listHandler.DeleteList)

		protected.POST("/lists/:list_id/cards", cardHandler.CreateCard)
		protected.GET("/lists/:list_id/cards", cardHandler.GetListCards)
		protected.GET("/cards/:card_id", cardHandler.GetCard)
		protected.PATCH("/cards/:card_id", cardHandler.UpdateCard)
		protected.DELETE("/cards/:card_id", cardHandler.DeleteCard)

		protected.POST("/cards/:card_id/comments", commentHandler.CreateComment)
		protected.GET("/cards/:card_id/comments", commentHandler.GetCardComments)
		protected.GET("/comments/:comment_id", commentHandler.GetComment)
		protected.PATCH("/comments/:comment_id", commentHandler.UpdateComment)
		protected.DELETE("/comments/:comment_id", commentHandler.DeleteComment)
	}

	return r
}
