package auth

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"CourseHub/internal/app_errors"
	"CourseHub/internal/models"
	"CourseHub/pkg/logger"
)

type userRepo interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type tokenRepo interface {
	Create(ctx context.Context, userID uuid.UUID, token *jwt.Token) (*models.RefreshToken, error)
	ByPrimaryKey(ctx context.Context, userID uuid.UUID, token *jwt.Token) (*models.RefreshToken, error)
	DeleteUserTokens(ctx context.Context, userID uuid.UUID) error
}

type AuthService struct {
	log        logger.Log
	jwtManager *JWTManager
	userRepo   userRepo
	tokenRepo  tokenRepo
}

func NewAuthService(l logger.Log, manager *JWTManager, uRepo userRepo, tRepo tokenRepo) *AuthService {
	return &AuthService{
		log:        l,
		jwtManager: manager,
		userRepo:   uRepo,
		tokenRepo:  tRepo,
	}
}

// Register creates the user and issues the first credential pair for the
// session.
func (u *AuthService) Register(ctx context.Context, user models.User) (*models.User, models.Credentials, error) {
	if len(user.Password) < 6 || len(user.Password) > 72 {
		return nil, models.Credentials{}, app_errors.ErrIncorrectPassword
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	hashed, err := hashPassword(user.Password)
	if err != nil {
		return nil, models.Credentials{}, err
	}
	user.Password = hashed

	created, err := u.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, models.Credentials{}, err
	}

	creds, err := u.issuePair(ctx, created.ID)
	if err != nil {
		return nil, models.Credentials{}, err
	}
	return created, creds, nil
}

func (u *AuthService) Login(ctx context.Context, email, password string) (*models.User, models.Credentials, error) {
	user, err := u.userRepo.UserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, models.Credentials{}, err
	}

	if !checkPasswordHash(password, user.Password) {
		return nil, models.Credentials{}, app_errors.ErrIncorrectPassword
	}

	creds, err := u.issuePair(ctx, user.ID)
	if err != nil {
		return nil, models.Credentials{}, err
	}
	return user, creds, nil
}

// RefreshTokens exchanges a refresh credential for a fresh pair. The prior
// refresh token row is deleted before the replacement is stored, so at most
// one refresh credential per user is ever valid.
func (u *AuthService) RefreshTokens(ctx context.Context, token string) (*models.User, models.Credentials, error) {
	curToken, err := u.jwtManager.Parse(token)
	if err != nil {
		return nil, models.Credentials{}, err
	}
	if !u.jwtManager.TokenType(curToken, RefreshTokenType) {
		return nil, models.Credentials{}, app_errors.ErrTokenNotFound
	}
	userIDStr, err := curToken.Claims.GetSubject()
	if err != nil {
		return nil, models.Credentials{}, err
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, models.Credentials{}, err
	}
	tokenRecord, err := u.tokenRepo.ByPrimaryKey(ctx, userID, curToken)
	if err != nil {
		return nil, models.Credentials{}, err
	}
	user, err := u.userRepo.UserByID(ctx, userID)
	if err != nil {
		return nil, models.Credentials{}, err
	}
	if tokenRecord.ExpiresAt.Before(time.Now()) {
		return nil, models.Credentials{}, app_errors.ErrTokenExpired
	}

	creds, err := u.issuePair(ctx, user.ID)
	if err != nil {
		return nil, models.Credentials{}, err
	}
	return user, creds, nil
}

// issuePair mints a pair and rotates the persisted refresh token row.
func (u *AuthService) issuePair(ctx context.Context, userID uuid.UUID) (models.Credentials, error) {
	tokenPair, err := u.jwtManager.GenerateTokenPair(userID)
	if err != nil {
		return models.Credentials{}, err
	}
	if err := u.tokenRepo.DeleteUserTokens(ctx, userID); err != nil {
		return models.Credentials{}, err
	}
	if _, err := u.tokenRepo.Create(ctx, userID, tokenPair.RefreshToken); err != nil {
		return models.Credentials{}, err
	}
	return tokenPair.Credentials(), nil
}

func (u *AuthService) ParseToken(ctx context.Context, token string) (*jwt.Token, error) {
	return u.jwtManager.Parse(token)
}

func (u *AuthService) IsAccessToken(ctx context.Context, token *jwt.Token) bool {
	return u.jwtManager.TokenType(token, AccessTokenType)
}

func (u *AuthService) AccessClaims(ctx context.Context, token string) (uuid.UUID, error) {
	claims, err := u.jwtManager.AccessClaims(token)
	if err != nil {
		return uuid.Nil, err
	}
	return claims.UserID, nil
}

func (u *AuthService) User(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return u.userRepo.UserByID(ctx, id)
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func checkPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
