package handlers

import (
	"github.com/actionanand/Ctrl-Alt-Del/internal/middleware"
	"github.com/actionanand/Ctrl-Alt-Del/internal/services"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the health, user and task routes on r.
func RegisterRoutes(r *gin.Engine, tokenService *services.TokenService, userHandler *UserHandler, taskService *services.TaskService, taskHandler *TaskHandler) {
	requireAuth := middleware.RequireAuth(tokenService)
	requireTask := middleware.RequireOwnedTask(taskService)

	r.GET("/health", Health)

	users := r.Group("/users")
	{
		users.POST("", userHandler.Signup)
		users.POST("/login", userHandler.Login)
		users.GET("/:id/avatar", userHandler.GetAvatar)

		users.GET("/me", requireAuth, userHandler.Me)
		users.PATCH("/me", requireAuth, userHandler.UpdateMe)
		users.DELETE("/me", requireAuth, userHandler.DeleteMe)
		users.POST("/logout", requireAuth, userHandler.Logout)
		users.POST("/logoutall", requireAuth, userHandler.LogoutAll)
		users.POST("/me/avatar", requireAuth, userHandler.UploadAvatar)
		users.DELETE("/me/avatar", requireAuth, userHandler.DeleteAvatar)
	}

	tasks := r.Group("/tasks")
	tasks.Use(requireAuth)
	{
		tasks.POST("", taskHandler.CreateTask)
		tasks.GET("", taskHandler.ListTasks)
		tasks.GET("/:id", requireTask, taskHandler.GetTask)
		tasks.PATCH("/:id", requireTask, taskHandler.UpdateTask)
		tasks.DELETE("/:id", requireTask, taskHandler.DeleteTask)
	}
}
