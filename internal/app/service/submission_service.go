package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"contesthub/internal/common"
	"contesthub/internal/domain/model"
	"contesthub/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
	contestRepo    repository.ContestRepository
	paymentRepo    repository.PaymentRepository
	db             *sql.DB // For transactions
}

func NewSubmissionService(
	submissionRepo repository.SubmissionRepository,
	contestRepo repository.ContestRepository,
	paymentRepo repository.PaymentRepository,
	db *sql.DB,
) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		contestRepo:    contestRepo,
		paymentRepo:    paymentRepo,
		db:             db,
	}
}

type SubmitRequest struct {
	Content  string `json:"content"`
	UserName string `json:"userName,omitempty"`
}

// Submit records an entry against a contest. Eligibility is the existence of
// a paid payment for (caller, contest).
func (s *SubmissionService) Submit(ctx context.Context, userEmail, contestID string, req SubmitRequest) (*model.Submission, error) {
	if req.Content == "" {
		return nil, fmt.Errorf("submission content is required: %w", common.ErrValidation)
	}

	if _, err := s.contestRepo.FindByID(ctx, contestID); err != nil {
		return nil, err
	}

	paid, err := s.paymentRepo.ExistsPaid(ctx, userEmail, contestID)
	if err != nil {
		return nil, fmt.Errorf("failed to check registration: %w", err)
	}
	if !paid {
		return nil, fmt.Errorf("payment required before submitting: %w", common.ErrForbidden)
	}

	userName := req.UserName
	if userName == "" {
		userName = userEmail
	}

	submission := &model.Submission{
		ID:          uuid.NewString(),
		ContestID:   contestID,
		UserEmail:   userEmail,
		UserName:    userName,
		Content:     req.Content,
		IsWinner:    false,
		SubmittedAt: time.Now().UTC(),
	}
	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}
	return submission, nil
}

// ListForContest is creator-scoped: only the contest owner may read entries.
func (s *SubmissionService) ListForContest(ctx context.Context, callerEmail, contestID string) ([]model.Submission, error) {
	contest, err := s.contestRepo.FindByID(ctx, contestID)
	if err != nil {
		return nil, err
	}
	if contest.CreatorEmail != callerEmail {
		return nil, fmt.Errorf("not your contest: %w", common.ErrForbidden)
	}

	subs, err := s.submissionRepo.ListByContest(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return subs, nil
}

// DeclareWinner marks exactly one submission per contest as the winner and
// denormalizes the winner identity onto the contest. Both writes happen in a
// single transaction so a crash cannot leave a winner-flagged submission
// without the matching contest reference.
func (s *SubmissionService) DeclareWinner(ctx context.Context, callerEmail, contestID, submissionID string) (*model.Submission, error) {
	contest, err := s.contestRepo.FindByID(ctx, contestID)
	if err != nil {
		return nil, err
	}
	if contest.CreatorEmail != callerEmail {
		return nil, fmt.Errorf("not your contest: %w", common.ErrForbidden)
	}
	if contest.WinnerSubmissionID != nil {
		return nil, fmt.Errorf("winner already declared for this contest: %w", common.ErrConflict)
	}

	submission, err := s.submissionRepo.FindByIDForContest(ctx, submissionID, contestID)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.submissionRepo.MarkWinner(ctx, tx, submission.ID); err != nil {
		return nil, fmt.Errorf("failed to mark winning submission: %w", err)
	}
	if err := s.contestRepo.SetWinner(ctx, tx, contestID, submission.ID, submission.UserEmail, submission.UserName); err != nil {
		// ErrConflict here means a concurrent call won the race; the
		// rollback also clears the submission flag.
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit winner declaration: %w", err)
	}

	log.Info().
		Str("contest_id", contestID).
		Str("submission_id", submission.ID).
		Str("winner", submission.UserEmail).
		Msg("winner declared")

	submission.IsWinner = true
	return submission, nil
}
