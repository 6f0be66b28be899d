package main

import (
	"github.com/gin-gonic/gin"

	"CourseHub/internal/app"
	"CourseHub/internal/config"
)

func main() {
	gin.SetMode(gin.ReleaseMode)
	cfg := config.MustLoad()
	app.Run(cfg)
}
