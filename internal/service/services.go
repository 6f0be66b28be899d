package service

import (
	"CourseHub/internal/service/auth"
	"CourseHub/internal/service/authored"
	"CourseHub/internal/service/catalog"
	"CourseHub/internal/service/enrollment"
	"CourseHub/internal/service/favorite"
	"CourseHub/internal/service/media"
	"CourseHub/internal/service/profile"
)

type Collection struct {
	AuthService       *auth.AuthService
	ProfileService    *profile.ProfileService
	CatalogService    *catalog.CatalogService
	EnrollmentService *enrollment.EnrollmentService
	FavoriteService   *favorite.FavoriteService
	AuthoredService   *authored.AuthoredService
	MediaService      *media.MediaService
}
