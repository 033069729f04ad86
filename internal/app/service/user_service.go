package service

import (
	"context"
	"errors"
	"fmt"

	"contesthub/internal/common"
	"contesthub/internal/domain/model"
	"contesthub/internal/domain/repository"

	"github.com/google/uuid"
)

type UserService struct {
	userRepo       repository.UserRepository
	paymentRepo    repository.PaymentRepository
	submissionRepo repository.SubmissionRepository
	contestRepo    repository.ContestRepository
}

func NewUserService(
	userRepo repository.UserRepository,
	paymentRepo repository.PaymentRepository,
	submissionRepo repository.SubmissionRepository,
	contestRepo repository.ContestRepository,
) *UserService {
	return &UserService{
		userRepo:       userRepo,
		paymentRepo:    paymentRepo,
		submissionRepo: submissionRepo,
		contestRepo:    contestRepo,
	}
}

type RegisterRequest struct {
	Email          string  `json:"email"`
	Name           string  `json:"name"`
	PhotoURL       string  `json:"photoURL"`
	Role           string  `json:"role"`
	RolePreference *string `json:"rolePreference,omitempty"`
}

type RegisterResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user,omitempty"`
}

// Register is idempotent: a repeat call with a known email reports "already
// exists" and never touches the stored record, so an admin-granted role
// survives re-registration.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	if req.Email == "" {
		return nil, fmt.Errorf("email is required: %w", common.ErrValidation)
	}

	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		return &RegisterResponse{Message: "User already exists"}, nil
	}

	role := req.Role
	if !model.ValidRole(role) {
		role = model.RoleUser
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Email:          req.Email,
		Name:           req.Name,
		PhotoURL:       req.PhotoURL,
		Role:           role,
		RolePreference: req.RolePreference,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent register may have won the unique-email race.
		if errors.Is(err, common.ErrConflict) {
			return &RegisterResponse{Message: "User already exists"}, nil
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &RegisterResponse{Message: "User created", User: user}, nil
}

// GetRole never fails: unknown emails resolve to the default role.
func (s *UserService) GetRole(ctx context.Context, email string) string {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil || user == nil {
		return model.RoleUser
	}
	return user.Role
}

func (s *UserService) ListAll(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *UserService) SetRole(ctx context.Context, id, role string) error {
	if !model.ValidRole(role) {
		return fmt.Errorf("invalid role %q: %w", role, common.ErrValidation)
	}
	n, err := s.userRepo.UpdateRole(ctx, id, role)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("user not found: %w", common.ErrNotFound)
	}
	return nil
}

func (s *UserService) GetProfile(ctx context.Context, email string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return user, nil
}

type ProfileUpdateRequest struct {
	Name     *string `json:"name,omitempty"`
	PhotoURL *string `json:"photoURL,omitempty"`
	// Bio distinguishes "clear me" (pointer to empty string) from
	// "leave me alone" (nil).
	Bio *string `json:"bio,omitempty"`
}

func (s *UserService) UpdateProfile(ctx context.Context, email string, req ProfileUpdateRequest) (*model.User, error) {
	if err := s.userRepo.UpdateProfile(ctx, email, req.Name, req.PhotoURL, req.Bio); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return s.GetProfile(ctx, email)
}

func (s *UserService) GetStats(ctx context.Context, email string) (*model.UserStats, error) {
	participated, err := s.paymentRepo.CountPaidByUser(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to count participations: %w", err)
	}
	wins, err := s.submissionRepo.CountWinsByUser(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to count wins: %w", err)
	}
	return &model.UserStats{Participated: participated, Wins: wins}, nil
}

func (s *UserService) ListWins(ctx context.Context, email string) ([]model.Contest, error) {
	contests, err := s.contestRepo.ListWonBy(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list won contests: %w", err)
	}
	return contests, nil
}
