package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devconnect-io/devconnect/pkg/auth"
	"github.com/devconnect-io/devconnect/pkg/logger"
)

// SetupRouter assembles the API surface. It is shared by cmd/server and
// the handler tests so both exercise the same routing and middleware.
func SetupRouter(
	jwtSvc *auth.JWTService,
	tokenHeader string,
	log logger.Logger,
	userHandler *UserHandler,
	authHandler *AuthHandler,
	profileHandler *ProfileHandler,
	githubHandler *GithubHandler,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ErrorMiddleware(log))

	authMiddleware := AuthMiddleware(jwtSvc, tokenHeader)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		api.POST("/users", userHandler.Register)

		api.POST("/auth", authHandler.Login)
		api.GET("/auth", authMiddleware, authHandler.GetAuthenticatedUser)

		profileRoutes := api.Group("/profile")
		{
			profileRoutes.GET("", profileHandler.ListProfiles)
			profileRoutes.GET("/user/:user_id", profileHandler.GetByUserID)
			if githubHandler != nil {
				profileRoutes.GET("/github/:username", githubHandler.ListRepos)
			}

			profileRoutes.GET("/me", authMiddleware, profileHandler.GetOwnProfile)
			profileRoutes.POST("", authMiddleware, profileHandler.Upsert)
			profileRoutes.DELETE("", authMiddleware, profileHandler.DeleteAccount)

			profileRoutes.PUT("/experience", authMiddleware, profileHandler.AddExperience)
			profileRoutes.DELETE("/experience/:exp_id", authMiddleware, profileHandler.RemoveExperience)
			profileRoutes.PUT("/education", authMiddleware, profileHandler.AddEducation)
			profileRoutes.DELETE("/education/:edu_id", authMiddleware, profileHandler.RemoveEducation)
		}
	}

	return router
}
