package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/albumforge/albumforge-api/internal/domain/user"
	"github.com/albumforge/albumforge-api/internal/pkg/jwt"
	"github.com/albumforge/albumforge-api/internal/pkg/password"
)

// Service handles authentication business logic
type Service struct {
	userRepo   user.Repository
	jwtService *jwt.Service
}

// NewService creates auth service
func NewService(userRepo user.Repository, jwtService *jwt.Service) *Service {
	return &Service{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates new user account
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	// 1. Check if username exists
	existing, _ := s.userRepo.GetByUsername(ctx, req.Username)
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	// 2. Hash password
	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	// 3. Create user
	now := time.Now()
	u := &user.User{
		ID:           uuid.New(),
		Username:     req.Username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		// Concurrent register with the same name loses the insert race
		if errors.Is(err, user.ErrUsernameTaken) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	// 4. Issue token
	return s.issueToken(u)
}

// Login authenticates user
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	// 1. Find user
	u, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}

	// 2. Verify password
	if !password.Verify(req.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	// 3. Issue token
	return s.issueToken(u)
}

// GetCurrentUser returns current user by ID
func (s *Service) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}

	resp := NewUserResponse(u.ID, u.Username, u.CreatedAt)
	return &resp, nil
}

// issueToken creates a signed access token response
func (s *Service) issueToken(u *user.User) (*AuthResponse, error) {
	token, err := s.jwtService.GenerateAccessToken(u.ID, u.Username, u.Role())
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token:     token,
		ExpiresIn: int(s.jwtService.GetAccessTTL().Seconds()),
		User:      NewUserResponse(u.ID, u.Username, u.CreatedAt),
	}, nil
}
