package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"CourseHub/internal/app/server"
	"CourseHub/internal/config"
	"CourseHub/internal/delivery/http"
	"CourseHub/internal/service"
	"CourseHub/internal/service/auth"
	"CourseHub/internal/service/authored"
	"CourseHub/internal/service/catalog"
	"CourseHub/internal/service/enrollment"
	"CourseHub/internal/service/favorite"
	"CourseHub/internal/service/media"
	"CourseHub/internal/service/profile"
	"CourseHub/internal/storage/elastic"
	"CourseHub/internal/storage/miniostore"
	"CourseHub/internal/storage/postgres"
	"CourseHub/pkg/logger"
)

func Run(cfg *config.Config) {
	log := logger.New(cfg.Env)
	log.Info("Starting with Env: " + cfg.Env)

	pg, err := postgres.NewPostgresPool(cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)
	if err != nil {
		log.FatalErr("error connecting to database", err)
	}
	defer pg.Close()

	esClient, err := elastic.NewElasticClient(cfg.ES.Password, cfg.ES.Hosts)
	if err != nil {
		log.FatalErr("error connecting to elasticsearch", err)
	}
	searchRepo := elastic.NewCourseSearchRepository(esClient, cfg.ES.Index)
	if err := searchRepo.CreateIndexIfNotExist(context.Background()); err != nil {
		log.FatalErr("error preparing search index", err)
	}

	minioClient, err := miniostore.NewMinioStorage(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
	if err != nil {
		log.FatalErr("error connecting to minio", err)
	}
	mediaStorage, err := miniostore.NewMediaStorage(minioClient, cfg.Minio.MediaBucket, cfg.Minio.PresignTTL)
	if err != nil {
		log.FatalErr("error preparing media bucket", err)
	}

	userRepo := postgres.NewUserPostgres(pg.Pool)
	tokenRepo := postgres.NewTokensPostgres(pg.Pool)
	courseRepo := postgres.NewCoursePostgres(pg.Pool)
	enrollRepo := postgres.NewEnrollmentPostgres(pg.Pool)
	favRepo := postgres.NewFavoritePostgres(pg.Pool)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Issuer, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	u := service.Collection{
		AuthService:       auth.NewAuthService(log, jwtManager, userRepo, tokenRepo),
		ProfileService:    profile.NewProfileService(log, userRepo),
		CatalogService:    catalog.NewCatalogService(log, courseRepo, searchRepo),
		EnrollmentService: enrollment.NewEnrollmentService(log, courseRepo, enrollRepo),
		FavoriteService:   favorite.NewFavoriteService(log, courseRepo, favRepo),
		AuthoredService:   authored.NewAuthoredService(log, courseRepo, searchRepo),
		MediaService:      media.NewMediaService(log, mediaStorage, cfg.Minio.MaxFileSize),
	}

	r := http.InitRoutes(log, u, cfg.HTTPServer.AllowOrigins)

	srv := server.New(cfg.HTTPServer.Address, cfg.HTTPServer.Timeout, cfg.HTTPServer.IdleTimeout, r)
	srv.Start()
	log.Info("listening on " + cfg.HTTPServer.Address)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app signal: " + s.String())
	case err := <-srv.Notify():
		log.ErrorErr("server error", err)
	}
	if err := srv.Shutdown(); err != nil {
		log.ErrorErr("server shutdown", err)
	}
}
