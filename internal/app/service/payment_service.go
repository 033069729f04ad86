package service

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"contesthub/internal/common"
	"contesthub/internal/domain/model"
	"contesthub/internal/domain/repository"
	"contesthub/internal/platform/payments"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type PaymentService struct {
	paymentRepo repository.PaymentRepository
	contestRepo repository.ContestRepository
	processor   payments.Processor
	db          *sql.DB // For transactions
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	contestRepo repository.ContestRepository,
	processor payments.Processor,
	db *sql.DB,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		contestRepo: contestRepo,
		processor:   processor,
		db:          db,
	}
}

type CreateIntentRequest struct {
	ContestID string `json:"contestId"`
}

type CreateIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// CreateIntent asks the payment processor for a charge intent covering the
// contest's entry price. Nothing is persisted; the ledger entry arrives with
// Record once the client confirms the charge.
func (s *PaymentService) CreateIntent(ctx context.Context, userEmail string, req CreateIntentRequest) (*CreateIntentResponse, error) {
	if req.ContestID == "" {
		return nil, fmt.Errorf("contestId is required: %w", common.ErrValidation)
	}

	contest, err := s.contestRepo.FindByID(ctx, req.ContestID)
	if err != nil {
		return nil, err
	}
	if contest.Price <= 0 {
		return nil, fmt.Errorf("contest has no payable price: %w", common.ErrValidation)
	}

	amountMinor := int64(math.Round(contest.Price * 100))
	secret, err := s.processor.CreateIntent(ctx, amountMinor, "", contest.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	return &CreateIntentResponse{ClientSecret: secret}, nil
}

type RecordPaymentRequest struct {
	ContestID     string  `json:"contestId"`
	Amount        float64 `json:"amount"`
	TransactionID string  `json:"transactionId"`
}

// Record persists the confirmed charge and bumps the contest's participation
// counter in one transaction, so every paid payment is counted exactly once.
func (s *PaymentService) Record(ctx context.Context, userEmail string, req RecordPaymentRequest) (*model.Payment, error) {
	if req.ContestID == "" || req.TransactionID == "" || req.Amount <= 0 {
		return nil, fmt.Errorf("contestId, amount and transactionId are required: %w", common.ErrValidation)
	}

	payment := &model.Payment{
		ID:            uuid.NewString(),
		UserEmail:     userEmail,
		ContestID:     req.ContestID,
		Amount:        req.Amount,
		TransactionID: req.TransactionID,
		Status:        model.PaymentPaid,
		PaidAt:        time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.paymentRepo.Create(ctx, tx, payment); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	if err := s.contestRepo.IncrementParticipation(ctx, tx, req.ContestID); err != nil {
		return nil, fmt.Errorf("failed to increment participation count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit payment: %w", err)
	}

	log.Info().
		Str("contest_id", req.ContestID).
		Str("user", userEmail).
		Str("transaction_id", req.TransactionID).
		Msg("payment recorded")

	return payment, nil
}

func (s *PaymentService) IsRegistered(ctx context.Context, userEmail, contestID string) (bool, error) {
	paid, err := s.paymentRepo.ExistsPaid(ctx, userEmail, contestID)
	if err != nil {
		return false, fmt.Errorf("failed to check registration: %w", err)
	}
	return paid, nil
}

func (s *PaymentService) ListMine(ctx context.Context, userEmail string) ([]model.ParticipatedContest, error) {
	result, err := s.paymentRepo.ListPaidWithContests(ctx, userEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return result, nil
}
