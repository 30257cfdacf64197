package http

import (
	"github.com/gin-gonic/gin"

	appsvc "gopherblog/internal/app"
	"gopherblog/internal/bootstrap"
	"gopherblog/internal/repository"
	"gopherblog/internal/transport/http/handler"
	"gopherblog/internal/transport/http/middleware"
)

// Routes reachable without a bearer token.
var openRoutes = []string{
	"/register",
	"/login",
	"/user/forgot-password",
	"/user/reset-password",
	"/healthz",
}

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	handler.SetupValidator()

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		gin.Logger(),
		gin.Recovery(),
		middleware.AuthJWT(app.Signer, openRoutes...),
	)

	userRepo := repository.NewUserRepository(app.UserDB)
	blogRepo := repository.NewBlogRepository(app.BlogDB)
	authService := appsvc.NewAuthService(userRepo, app.Hasher, app.Signer, app.Notifier, app.Throttle)
	blogService := appsvc.NewBlogService(blogRepo)

	healthHandler := handler.NewHealthHandler(app)
	authHandler := handler.NewAuthHandler(authService, app.Logger)
	accountHandler := handler.NewAccountHandler(authService, app.Logger)
	blogHandler := handler.NewBlogHandler(blogService, app.Logger)

	router.GET("/healthz", healthHandler.Check)
	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)

	userGroup := router.Group("/user")
	userGroup.POST("/forgot-password", accountHandler.ForgotPassword)
	userGroup.POST("/reset-password", accountHandler.ResetPassword)

	blogGroup := router.Group("/blog")
	blogGroup.POST("/addBlog", blogHandler.AddBlog)
	blogGroup.POST("/deleteBlog", blogHandler.DeleteBlog)
	blogGroup.POST("/updateBlog", blogHandler.UpdateBlog)
	blogGroup.GET("/list", blogHandler.ListBlogs)
	blogGroup.GET("/:id", blogHandler.GetBlog)

	return router
}
