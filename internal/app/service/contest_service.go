package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"contesthub/internal/common"
	"contesthub/internal/domain/model"
	"contesthub/internal/domain/repository"
	"contesthub/internal/platform/cache"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/rs/zerolog/log"
)

const (
	DefaultPublicPageSize = 9
	DefaultAdminPageSize  = 10
	popularLimit          = 6
	leaderboardLimit      = 5

	popularCacheKey     = "contests:popular"
	leaderboardCacheKey = "contests:leaderboard"
)

type ContestService struct {
	contestRepo repository.ContestRepository
	cache       *cache.Cache // nil disables caching
}

func NewContestService(contestRepo repository.ContestRepository, c *cache.Cache) *ContestService {
	return &ContestService{contestRepo: contestRepo, cache: c}
}

type CreateContestRequest struct {
	Name            string     `json:"name"`
	Image           string     `json:"image"`
	Description     string     `json:"description"`
	Price           float64    `json:"price"`
	PrizeMoney      float64    `json:"prizeMoney"`
	TaskInstruction string     `json:"taskInstruction"`
	Type            string     `json:"type"`
	Deadline        *time.Time `json:"deadline,omitempty"`
}

// Create forces the moderation lifecycle regardless of client input: every
// contest starts pending with a zero participation count.
func (s *ContestService) Create(ctx context.Context, creatorEmail string, req CreateContestRequest) (*model.Contest, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("contest name is required: %w", common.ErrValidation)
	}

	contest := &model.Contest{
		ID:                 uuid.NewString(),
		Name:               req.Name,
		Slug:               slug.Make(req.Name),
		Image:              req.Image,
		Description:        req.Description,
		Price:              req.Price,
		PrizeMoney:         req.PrizeMoney,
		TaskInstruction:    req.TaskInstruction,
		Type:               req.Type,
		Deadline:           req.Deadline,
		CreatorEmail:       creatorEmail,
		Status:             model.ContestPending,
		ParticipationCount: 0,
		CreatedAt:          time.Now().UTC(),
	}

	if err := s.contestRepo.Create(ctx, contest); err != nil {
		return nil, fmt.Errorf("failed to create contest: %w", err)
	}
	return contest, nil
}

type ListContestsQuery struct {
	Search string
	Type   string
	Page   int
	Limit  int
}

func (s *ContestService) List(ctx context.Context, q ListContestsQuery) (*model.ContestPage, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = DefaultPublicPageSize
	}
	offset := (q.Page - 1) * q.Limit

	contests, total, err := s.contestRepo.ListApproved(ctx, q.Search, q.Type, q.Limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list contests: %w", err)
	}

	return &model.ContestPage{
		Contests:   contests,
		Total:      total,
		Page:       q.Page,
		TotalPages: totalPages(total, q.Limit),
	}, nil
}

func (s *ContestService) Popular(ctx context.Context) ([]model.Contest, error) {
	var cached []model.Contest
	if err := s.cache.Get(ctx, popularCacheKey, &cached); err == nil {
		return cached, nil
	}

	contests, err := s.contestRepo.ListPopular(ctx, popularLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list popular contests: %w", err)
	}
	if err := s.cache.Set(ctx, popularCacheKey, contests); err != nil {
		log.Warn().Err(err).Msg("failed to cache popular contests")
	}
	return contests, nil
}

func (s *ContestService) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	var cached []model.LeaderboardEntry
	if err := s.cache.Get(ctx, leaderboardCacheKey, &cached); err == nil {
		return cached, nil
	}

	entries, err := s.contestRepo.Leaderboard(ctx, leaderboardLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to build leaderboard: %w", err)
	}
	if err := s.cache.Set(ctx, leaderboardCacheKey, entries); err != nil {
		log.Warn().Err(err).Msg("failed to cache leaderboard")
	}
	return entries, nil
}

func (s *ContestService) GetByID(ctx context.Context, id string) (*model.Contest, error) {
	contest, err := s.contestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return contest, nil
}

func (s *ContestService) GetBySlug(ctx context.Context, contestSlug string) (*model.Contest, error) {
	contest, err := s.contestRepo.FindBySlug(ctx, contestSlug)
	if err != nil {
		return nil, err
	}
	return contest, nil
}

func (s *ContestService) ListByCreator(ctx context.Context, creatorEmail string) ([]model.Contest, error) {
	contests, err := s.contestRepo.ListByCreator(ctx, creatorEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to list creator contests: %w", err)
	}
	return contests, nil
}

// UpdateByCreator edits a contest only while it is the caller's and still
// pending. A non-matching contest yields zero modified rows, which is
// reported as a silent no-op, not an error.
func (s *ContestService) UpdateByCreator(ctx context.Context, creatorEmail, id string, patch model.ContestPatch) (int64, error) {
	n, err := s.contestRepo.UpdateByCreator(ctx, id, creatorEmail, patch)
	if err != nil {
		return 0, fmt.Errorf("failed to update contest: %w", err)
	}
	return n, nil
}

func (s *ContestService) DeleteByCreator(ctx context.Context, creatorEmail, id string) error {
	n, err := s.contestRepo.DeleteByCreator(ctx, id, creatorEmail)
	if err != nil {
		return fmt.Errorf("failed to delete contest: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("only your own pending contests can be deleted: %w", common.ErrBadRequest)
	}
	return nil
}

func (s *ContestService) SetStatus(ctx context.Context, id string, status model.ContestStatus) error {
	if !model.ValidContestStatus(status) {
		return fmt.Errorf("invalid status %q: %w", status, common.ErrValidation)
	}
	n, err := s.contestRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return fmt.Errorf("failed to update contest status: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("contest not found: %w", common.ErrNotFound)
	}
	return nil
}

func (s *ContestService) Delete(ctx context.Context, id string) error {
	n, err := s.contestRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete contest: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("contest not found: %w", common.ErrNotFound)
	}
	return nil
}

type AdminListQuery struct {
	Status model.ContestStatus
	Page   int
	Limit  int
}

func (s *ContestService) ListForAdmin(ctx context.Context, q AdminListQuery) (*model.ContestPage, error) {
	if q.Status != "" && !model.ValidContestStatus(q.Status) {
		return nil, fmt.Errorf("invalid status filter %q: %w", q.Status, common.ErrValidation)
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = DefaultAdminPageSize
	}
	offset := (q.Page - 1) * q.Limit

	contests, total, err := s.contestRepo.ListAll(ctx, q.Status, q.Limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list contests: %w", err)
	}

	return &model.ContestPage{
		Contests:   contests,
		Total:      total,
		Page:       q.Page,
		TotalPages: totalPages(total, q.Limit),
	}, nil
}

func totalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}
