package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jobtrack/jobtrack/internal/data/repository"
	"github.com/jobtrack/jobtrack/pkg/jwt"
	"github.com/jobtrack/jobtrack/pkg/logger"
	"github.com/jobtrack/jobtrack/pkg/nanoid"
)

// ErrInvalidCredentials is returned for both unknown emails and wrong
// passwords so login failures never reveal which one it was.
var ErrInvalidCredentials = errors.New("invalid email or password")

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=128"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries a signed token together with the account it
// represents.
type AuthResponse struct {
	Token string           `json:"token"`
	User  *repository.User `json:"user"`
}

// Identity is the authenticated caller, as decoded from a valid access
// token.
type Identity struct {
	UserID string
	Email  string
	Role   repository.Role
}

// IsAdmin reports whether the identity carries the admin role.
func (i *Identity) IsAdmin() bool {
	return i.Role == repository.RoleAdmin
}

// AuthService handles registration, login and token validation.
type AuthService struct {
	users  repository.UserRepository
	tokens *jwt.TokenManager
	logger *logger.Logger
}

// NewAuthService creates a new auth service instance.
func NewAuthService(users repository.UserRepository, tokens *jwt.TokenManager, logger *logger.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates an account and returns a signed token for it.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, &repository.User{
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.Infof(ctx, "user registered: %s", user.ID)
	return &AuthResponse{Token: token, User: user}, nil
}

// Login authenticates an account by email and password.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: user}, nil
}

// Me returns the account behind a user id.
func (s *AuthService) Me(ctx context.Context, userID string) (*repository.User, error) {
	return s.users.FindByID(ctx, userID)
}

// ValidateToken decodes and validates an access token, returning the
// identity it carries.
func (s *AuthService) ValidateToken(tokenString string) (*Identity, error) {
	claims, err := s.tokens.DecodeToken(tokenString)
	if err != nil {
		return nil, jwt.ErrInvalidToken
	}
	if !jwt.IsAccessToken(claims) {
		return nil, jwt.ErrInvalidToken
	}

	userID := jwt.GetPayloadString(claims, "user_id")
	if userID == "" {
		return nil, jwt.ErrInvalidToken
	}

	return &Identity{
		UserID: userID,
		Email:  jwt.GetPayloadString(claims, "email"),
		Role:   repository.Role(jwt.GetPayloadString(claims, "role")),
	}, nil
}

// Identify resolves a token to its user id. It backs the websocket
// handshake, where the room name must come from the token alone.
func (s *AuthService) Identify(tokenString string) (string, error) {
	ident, err := s.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	return ident.UserID, nil
}

// signToken issues an access token carrying the user's id, email and role.
func (s *AuthService) signToken(user *repository.User) (string, error) {
	return s.tokens.GenerateAccessToken(nanoid.PrimaryKey(), map[string]any{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
	})
}
