package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/sentreats/sentreats-server/internal/config"
	"github.com/sentreats/sentreats-server/internal/dto"
	"github.com/sentreats/sentreats-server/internal/models"
	"github.com/sentreats/sentreats-server/internal/store"
)

var (
	ErrUsernameTaken      = errors.New("username already registered")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	store store.Store
	cfg   *config.Config
}

func NewAuthService(st store.Store, cfg *config.Config) *AuthService {
	return &AuthService{store: st, cfg: cfg}
}

// Register creates an account and returns it with a fresh access token.
// Username and email must each be unused.
func (s *AuthService) Register(req *dto.RegisterRequest) (*models.User, string, error) {
	if _, err := s.store.UserByUsername(req.Username); err == nil {
		return nil, "", ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, "", fmt.Errorf("failed to check username: %w", err)
	}

	if _, err := s.store.UserByEmail(req.Email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username:    req.Username,
		Email:       req.Email,
		Password:    string(hash),
		Bio:         req.Bio,
		AvatarColor: models.AvatarColorFor(req.Username),
	}

	if err := s.store.CreateUser(&user); err != nil {
		return nil, "", err
	}

	token, err := s.GenerateToken(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// Login authenticates by username or email. Unknown identifiers and wrong
// passwords are indistinguishable to the caller.
func (s *AuthService) Login(req *dto.LoginRequest) (*models.User, string, error) {
	user, err := s.store.UserByUsername(req.Identifier)
	if errors.Is(err, store.ErrNotFound) {
		user, err = s.store.UserByEmail(req.Identifier)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GenerateToken mints an HS256 access token. Expiry is the only termination
// mechanism; there is no server-side revocation.
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(user.ID), 10),
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(s.cfg.JWTExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// VerifyToken checks signature and expiry and returns the subject user id.
// It never touches the store.
func (s *AuthService) VerifyToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return 0, ErrInvalidToken
	}
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}

// CurrentUser loads the live profile for a verified token subject.
func (s *AuthService) CurrentUser(userID uint) (*models.User, error) {
	user, err := s.store.UserByID(userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}
