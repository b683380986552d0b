package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/JayeshSardesai/ERP-sub004/entity"
	repository "github.com/JayeshSardesai/ERP-sub004/internal/database"
	"github.com/JayeshSardesai/ERP-sub004/internal/lib/sl"
)

// ErrInvalidCredentials covers both unknown accounts and bad passwords
// so the response does not leak which one it was.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidToken marks a token that failed verification.
var ErrInvalidToken = errors.New("invalid token")

// Resolver yields the tenant handle for a school code.
type Resolver interface {
	Resolve(ctx context.Context, schoolCode string) (*repository.Tenant, error)
}

// Claims is the JWT payload carried by every bearer token.
type Claims struct {
	jwt.RegisteredClaims
	Name       string `json:"name"`
	Role       string `json:"role"`
	SchoolCode string `json:"school_code"`
}

// Service issues and verifies bearer tokens against tenant accounts.
type Service struct {
	tenants  Resolver
	secret   []byte
	tokenTTL time.Duration
	log      *slog.Logger
}

func NewService(tenants Resolver, secret string, tokenTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		tenants:  tenants,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		log:      logger.With(sl.Module("auth-service")),
	}
}

// Login checks credentials against the school's accounts and issues a
// token scoped to that school.
func (s *Service) Login(ctx context.Context, schoolCode, email, password string) (string, *entity.User, error) {
	tenant, err := s.tenants.Resolve(ctx, schoolCode)
	if err != nil {
		return "", nil, err
	}

	user, err := tenant.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issue(user, tenant.Code)
	if err != nil {
		return "", nil, err
	}

	s.log.Info("user logged in",
		slog.String("school_code", tenant.Code),
		slog.String("user_id", user.ID),
		slog.String("role", user.Role),
	)
	return token, user, nil
}

func (s *Service) issue(user *entity.User, schoolCode string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		Name:       user.Name,
		Role:       user.Role,
		SchoolCode: schoolCode,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses a bearer token and returns the caller's identity.
func (s *Service) VerifyToken(tokenString string) (*entity.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return &entity.Identity{
		UserID:     claims.Subject,
		Name:       claims.Name,
		Role:       claims.Role,
		SchoolCode: claims.SchoolCode,
	}, nil
}
