package routes

import (
	"github.com/gin-gonic/gin"

	"soccermass/internal/handlers"
	"soccermass/internal/middleware"
)

func SetupRoutes(r *gin.Engine, accountHandler *handlers.AccountHandler) *gin.Engine {

	// ---- public
	r.GET("/", accountHandler.RedirectToClient)
	r.GET("/healthz", accountHandler.Healthz)

	r.POST("/signup", accountHandler.Signup)
	r.POST("/verify-account", accountHandler.VerifyAccount)
	r.POST("/signin", accountHandler.Signin)
	r.POST("/reset-password-otp", accountHandler.ResetPasswordOTP)
	r.POST("/reset-password", accountHandler.ResetPassword)
	r.POST("/email-taken", accountHandler.EmailTaken)
	r.POST("/persist-user", accountHandler.PersistUser)

	// ---- protected (SSID cookie / bearer)
	r.Use(middleware.AuthMiddleware())

	r.POST("/data-deletion", accountHandler.DataDeletion)

	return r
}
