package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "accounthub/internal/app"
	"accounthub/internal/bootstrap"
	"accounthub/internal/cache"
	"accounthub/internal/platform/rabbitmq"
	"accounthub/internal/repository"
	"accounthub/internal/transport/http/handler"
	"accounthub/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	mailPublisher := rabbitmq.NewMailPublisher(app.MQConn, app.Config.RabbitMQ.MailQueue)
	notifier := appsvc.NewMailNotifier(mailPublisher)
	avatarCache := cache.NewAvatarCache(app.Redis, time.Duration(app.Config.Redis.AvatarTTLSeconds)*time.Second)

	authService := appsvc.NewAuthService(userRepo, notifier, app.Config.Auth.JWTSecret)
	userService := appsvc.NewUserService(userRepo, notifier, avatarCache)
	avatarService := appsvc.NewAvatarService(userRepo, avatarCache)

	RegisterRoutes(router, authService, userService, avatarService)

	return router
}

// RegisterRoutes mounts the account endpoints on the router.
func RegisterRoutes(router *gin.Engine, authService *appsvc.AuthService, userService *appsvc.UserService, avatarService *appsvc.AvatarService) {
	userHandler := handler.NewUserHandler(authService, userService)
	avatarHandler := handler.NewAvatarHandler(avatarService)

	authRequired := middleware.Auth(authService)

	users := router.Group("/users")
	users.POST("", userHandler.Create)
	users.POST("/login", userHandler.Login)
	users.POST("/logout", authRequired, userHandler.Logout)
	users.POST("/logoutAll", authRequired, userHandler.LogoutAll)
	users.GET("/me", authRequired, userHandler.GetSelf)
	users.PATCH("/me", authRequired, userHandler.UpdateSelf)
	users.DELETE("/me", authRequired, userHandler.DeleteSelf)
	users.POST("/me/avatar", authRequired, avatarHandler.Upload)
	users.DELETE("/me/avatar", authRequired, avatarHandler.Delete)
	users.GET("/:id/avatar", avatarHandler.GetByID)
}
