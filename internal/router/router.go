package router

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"askbox/internal/handlers"
	"askbox/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	questionHandler := handlers.NewQuestionHandler()
	answerHandler := handlers.NewAnswerHandler()
	tagHandler := handlers.NewTagHandler()
	userHandler := handlers.NewUserHandler()

	// Public Routes
	r.GET("/", questionHandler.Index)
	r.GET("/questions", questionHandler.List)
	r.GET("/questions/:id", questionHandler.Detail)
	r.GET("/questions/tagged/:id", questionHandler.ListTagged)
	r.GET("/tags", tagHandler.List)
	r.GET("/users/:username", userHandler.Profile)

	r.GET("/signup", authHandler.ShowSignup)
	r.POST("/signup", authHandler.Signup)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	// Protected Routes
	limiter := middleware.NewIPRateLimiter(rate.Limit(2), 8)
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired(), limiter.Middleware())
	{
		authorized.GET("/questions/ask", questionHandler.ShowAsk)
		authorized.POST("/questions/ask", questionHandler.Ask)
		authorized.POST("/questions/:id", questionHandler.SubmitDetail)

		authorized.GET("/edit/questions/:id", questionHandler.ShowEdit)
		authorized.POST("/edit/questions/:id", questionHandler.Update)
		authorized.GET("/delete/questions/:id", questionHandler.ConfirmDelete)
		authorized.POST("/delete/questions/:id", questionHandler.Delete)

		authorized.GET("/edit/answers/:id", answerHandler.ShowEdit)
		authorized.POST("/edit/answers/:id", answerHandler.Update)
		authorized.GET("/delete/answers/:id", answerHandler.ConfirmDelete)
		authorized.POST("/delete/answers/:id", answerHandler.Delete)

		authorized.GET("/users/:username/settings", userHandler.ShowSettings)
		authorized.POST("/users/:username/settings", userHandler.UpdateSettings)
		authorized.GET("/delete/user/:username", userHandler.ConfirmDelete)
		authorized.POST("/delete/user/:username", userHandler.Delete)
	}
}
