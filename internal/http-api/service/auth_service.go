package service

import (
	"errors"
	"time"

	"foodgram/internal/config"
	"foodgram/internal/http-api/models"
	"foodgram/internal/http-api/repository"
	"foodgram/internal/middleware/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrNameInUse          = errors.New("username already in use")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
)

// Claims carried by an access token.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(username, password, email, firstName, lastName string) (*models.User, error)
	Login(username, password string) (accessToken, refreshToken string, user *models.User, err error)
	RefreshAccessToken(refreshToken string) (newAccessToken, newRefreshToken string, err error)
	ValidateToken(tokenString string) (*Claims, error)
	RevokeToken(refreshToken string) error
}

type authService struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	jwtSecret        string
	accessTokenTTL   time.Duration
	refreshTokenTTL  time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		jwtSecret:        cfg.JWTSecret,
		accessTokenTTL:   cfg.AccessTokenTTL,
		refreshTokenTTL:  cfg.RefreshTokenTTL,
	}
}

// Register creates a new user with a bcrypt-hashed password.
func (s *authService) Register(username, password, email, firstName, lastName string) (*models.User, error) {
	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrNameInUse
	}
	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailInUse
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:  username,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Password:  hashedPassword,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login authenticates a user and returns access and refresh tokens.
func (s *authService) Login(username, password string) (string, string, *models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		// dummy compare so a missing user takes as long as a bad password
		auth.VerifyPassword("$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8e", password)
		return "", "", nil, ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(user.Password, password); err != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return "", "", nil, err
	}

	refreshToken, err := s.generateRefreshToken(user.ID)
	if err != nil {
		return "", "", nil, err
	}

	return accessToken, refreshToken, user, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) generateRefreshToken(userID int64) (string, error) {
	refreshToken := &models.RefreshToken{
		ID:        uuid.New().String(),
		UserID:    userID,
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().Add(s.refreshTokenTTL),
	}

	if err := s.refreshTokenRepo.Create(refreshToken); err != nil {
		return "", err
	}

	return refreshToken.Token, nil
}

// RefreshAccessToken rotates both tokens: the presented refresh token is
// retired and a fresh pair comes back.
func (s *authService) RefreshAccessToken(refreshTokenString string) (string, string, error) {
	refreshToken, err := s.refreshTokenRepo.FindByToken(refreshTokenString)
	if err != nil || refreshToken.Revoked {
		return "", "", ErrInvalidToken
	}

	if time.Now().After(refreshToken.ExpiresAt) {
		s.refreshTokenRepo.Delete(refreshToken.ID)
		return "", "", ErrExpiredToken
	}

	user, err := s.userRepo.FindByID(refreshToken.UserID)
	if err != nil {
		return "", "", err
	}

	if err := s.refreshTokenRepo.Delete(refreshToken.ID); err != nil {
		return "", "", err
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return "", "", err
	}
	newRefreshToken, err := s.generateRefreshToken(user.ID)
	if err != nil {
		return "", "", err
	}

	return accessToken, newRefreshToken, nil
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *authService) RevokeToken(refreshTokenString string) error {
	refreshToken, err := s.refreshTokenRepo.FindByToken(refreshTokenString)
	if err != nil {
		return ErrInvalidToken
	}
	return s.refreshTokenRepo.Revoke(refreshToken.ID)
}
