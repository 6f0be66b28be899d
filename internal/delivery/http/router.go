package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"CourseHub/internal/delivery/http/controllers"
	"CourseHub/internal/service"
	"CourseHub/pkg/logger"
)

func InitRoutes(l logger.Log, u service.Collection, allowOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	config := cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	r.Use(cors.New(config))

	statusController := controllers.NewStatusHandler()
	authController := controllers.NewAuthHandler(l, u.AuthService)
	profileController := controllers.NewProfileHandler(l, u.ProfileService)
	catalogController := controllers.NewCatalogHandler(l, u.CatalogService)
	enrollmentController := controllers.NewEnrollmentHandler(l, u.EnrollmentService)
	favoriteController := controllers.NewFavoriteHandler(l, u.FavoriteService)
	authoredController := controllers.NewAuthoredHandler(l, u.AuthoredService)
	mediaController := controllers.NewMediaHandler(l, u.MediaService)

	v1 := r.Group("/v1", controllers.LoggingMiddleware(l))
	{
		v1.GET("/status", statusController.Status)

		auth := v1.Group("/auth")
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
			auth.POST("/refresh", authController.Refresh)
		}

		courses := v1.Group("/courses")
		{
			courses.GET("", catalogController.List)
			courses.GET("/:course_id", catalogController.CourseByID)
		}

		authed := v1.Group("", authController.AuthMiddleware)
		{
			users := authed.Group("/users")
			{
				users.GET("/me", profileController.Me)
				users.PATCH("/me", profileController.Update)
			}

			enrollments := authed.Group("/enrollments")
			{
				enrollments.GET("", enrollmentController.List)
				enrollments.POST("", enrollmentController.Join)
				enrollments.PATCH("/progress", enrollmentController.UpdateProgress)
			}

			favorites := authed.Group("/favorites")
			{
				favorites.GET("", favoriteController.List)
				favorites.POST("/toggle", favoriteController.Toggle)
			}

			authoredCourses := authed.Group("/authored-courses")
			{
				authoredCourses.GET("", authoredController.List)
				authoredCourses.POST("", authoredController.Create)
				authoredCourses.PUT("/:course_id", authoredController.Update)
			}

			authed.POST("/media", mediaController.Upload)
		}
	}
	return r
}
