package service_test

import (
	"context"
	"errors"
	"testing"

	"contesthub/internal/app/service"
	"contesthub/internal/common"
	"contesthub/internal/domain/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubProcessor struct {
	gotAmount   int64
	gotContest  string
	secret      string
	err         error
	invocations int
}

func (p *stubProcessor) CreateIntent(ctx context.Context, amountMinor int64, currency string, contestID string) (string, error) {
	p.invocations++
	p.gotAmount = amountMinor
	p.gotContest = contestID
	return p.secret, p.err
}

func TestPaymentService_CreateIntent(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects a missing contest id", func(t *testing.T) {
		svc := service.NewPaymentService(new(mockPaymentRepo), new(mockContestRepo), &stubProcessor{}, nil)
		_, err := svc.CreateIntent(ctx, "alice@example.com", service.CreateIntentRequest{})
		assert.ErrorIs(t, err, common.ErrValidation)
	})

	t.Run("charges the contest price in minor units", func(t *testing.T) {
		contests := new(mockContestRepo)
		contests.On("FindByID", ctx, "contest-1").Return(&model.Contest{
			ID:    "contest-1",
			Price: 25.00,
		}, nil)
		processor := &stubProcessor{secret: "pi_secret_123"}

		svc := service.NewPaymentService(new(mockPaymentRepo), contests, processor, nil)
		resp, err := svc.CreateIntent(ctx, "alice@example.com", service.CreateIntentRequest{ContestID: "contest-1"})

		require.NoError(t, err)
		assert.Equal(t, "pi_secret_123", resp.ClientSecret)
		assert.Equal(t, int64(2500), processor.gotAmount)
		assert.Equal(t, "contest-1", processor.gotContest)
	})

	t.Run("a free contest is not payable", func(t *testing.T) {
		contests := new(mockContestRepo)
		contests.On("FindByID", ctx, "contest-free").Return(&model.Contest{ID: "contest-free", Price: 0}, nil)
		processor := &stubProcessor{}

		svc := service.NewPaymentService(new(mockPaymentRepo), contests, processor, nil)
		_, err := svc.CreateIntent(ctx, "alice@example.com", service.CreateIntentRequest{ContestID: "contest-free"})

		assert.ErrorIs(t, err, common.ErrValidation)
		assert.Zero(t, processor.invocations)
	})

	t.Run("propagates processor failures", func(t *testing.T) {
		contests := new(mockContestRepo)
		contests.On("FindByID", ctx, "contest-1").Return(&model.Contest{ID: "contest-1", Price: 10}, nil)
		processor := &stubProcessor{err: errors.New("stripe is down")}

		svc := service.NewPaymentService(new(mockPaymentRepo), contests, processor, nil)
		_, err := svc.CreateIntent(ctx, "alice@example.com", service.CreateIntentRequest{ContestID: "contest-1"})
		assert.Error(t, err)
	})
}

func TestPaymentService_Record(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects incomplete payloads", func(t *testing.T) {
		svc := service.NewPaymentService(new(mockPaymentRepo), new(mockContestRepo), &stubProcessor{}, nil)

		for _, req := range []service.RecordPaymentRequest{
			{},
			{ContestID: "contest-1", Amount: 10},
			{ContestID: "contest-1", TransactionID: "txn"},
			{Amount: 10, TransactionID: "txn"},
		} {
			_, err := svc.Record(ctx, "alice@example.com", req)
			assert.ErrorIs(t, err, common.ErrValidation)
		}
	})

	t.Run("stores the payment and bumps the counter in one transaction", func(t *testing.T) {
		db, dbMock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		dbMock.ExpectBegin()
		dbMock.ExpectCommit()

		payments := new(mockPaymentRepo)
		payments.On("Create", ctx, mock.Anything, mock.MatchedBy(func(p *model.Payment) bool {
			return p.UserEmail == "alice@example.com" &&
				p.ContestID == "contest-1" &&
				p.Status == model.PaymentPaid
		})).Return(nil)
		contests := new(mockContestRepo)
		contests.On("IncrementParticipation", ctx, mock.Anything, "contest-1").Return(nil)

		svc := service.NewPaymentService(payments, contests, &stubProcessor{}, db)
		payment, err := svc.Record(ctx, "alice@example.com", service.RecordPaymentRequest{
			ContestID:     "contest-1",
			Amount:        25,
			TransactionID: "txn_123",
		})

		require.NoError(t, err)
		assert.Equal(t, "txn_123", payment.TransactionID)
		require.NoError(t, dbMock.ExpectationsWereMet())
		payments.AssertExpectations(t)
		contests.AssertExpectations(t)
	})

	t.Run("a failed counter bump rolls the payment back", func(t *testing.T) {
		db, dbMock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		dbMock.ExpectBegin()
		dbMock.ExpectRollback()

		payments := new(mockPaymentRepo)
		payments.On("Create", ctx, mock.Anything, mock.Anything).Return(nil)
		contests := new(mockContestRepo)
		contests.On("IncrementParticipation", ctx, mock.Anything, "contest-1").
			Return(errors.New("contest vanished"))

		svc := service.NewPaymentService(payments, contests, &stubProcessor{}, db)
		_, err = svc.Record(ctx, "alice@example.com", service.RecordPaymentRequest{
			ContestID:     "contest-1",
			Amount:        25,
			TransactionID: "txn_123",
		})

		assert.Error(t, err)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestPaymentService_IsRegistered(t *testing.T) {
	ctx := context.Background()

	payments := new(mockPaymentRepo)
	payments.On("ExistsPaid", ctx, "alice@example.com", "contest-1").Return(true, nil)

	svc := service.NewPaymentService(payments, new(mockContestRepo), &stubProcessor{}, nil)
	registered, err := svc.IsRegistered(ctx, "alice@example.com", "contest-1")

	require.NoError(t, err)
	assert.True(t, registered)
}
