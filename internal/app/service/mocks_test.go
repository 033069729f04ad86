package service_test

import (
	"context"
	"database/sql"

	"contesthub/internal/domain/model"

	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if u := args.Get(0); u != nil {
		return u.([]model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) UpdateRole(ctx context.Context, id, role string) (int64, error) {
	args := m.Called(ctx, id, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, email string, name, photoURL, bio *string) error {
	args := m.Called(ctx, email, name, photoURL, bio)
	return args.Error(0)
}

type mockContestRepo struct {
	mock.Mock
}

func (m *mockContestRepo) Create(ctx context.Context, contest *model.Contest) error {
	args := m.Called(ctx, contest)
	return args.Error(0)
}

func (m *mockContestRepo) FindByID(ctx context.Context, id string) (*model.Contest, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*model.Contest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockContestRepo) FindBySlug(ctx context.Context, slug string) (*model.Contest, error) {
	args := m.Called(ctx, slug)
	if c := args.Get(0); c != nil {
		return c.(*model.Contest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockContestRepo) ListApproved(ctx context.Context, search, contestType string, limit, offset int) ([]model.Contest, int, error) {
	args := m.Called(ctx, search, contestType, limit, offset)
	var contests []model.Contest
	if c := args.Get(0); c != nil {
		contests = c.([]model.Contest)
	}
	return contests, args.Int(1), args.Error(2)
}

func (m *mockContestRepo) ListPopular(ctx context.Context, limit int) ([]model.Contest, error) {
	args := m.Called(ctx, limit)
	if c := args.Get(0); c != nil {
		return c.([]model.Contest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockContestRepo) ListByCreator(ctx context.Context, creatorEmail string) ([]model.Contest, error) {
	args := m.Called(ctx, creatorEmail)
	if c := args.Get(0); c != nil {
		return c.([]model.Contest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockContestRepo) ListAll(ctx context.Context, status model.ContestStatus, limit, offset int) ([]model.Contest, int, error) {
	args := m.Called(ctx, status, limit, offset)
	var contests []model.Contest
	if c := args.Get(0); c != nil {
		contests = c.([]model.Contest)
	}
	return contests, args.Int(1), args.Error(2)
}

func (m *mockContestRepo) ListWonBy(ctx context.Context, winnerEmail string) ([]model.Contest, error) {
	args := m.Called(ctx, winnerEmail)
	if c := args.Get(0); c != nil {
		return c.([]model.Contest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockContestRepo) UpdateByCreator(ctx context.Context, id, creatorEmail string, patch model.ContestPatch) (int64, error) {
	args := m.Called(ctx, id, creatorEmail, patch)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockContestRepo) DeleteByCreator(ctx context.Context, id, creatorEmail string) (int64, error) {
	args := m.Called(ctx, id, creatorEmail)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockContestRepo) UpdateStatus(ctx context.Context, id string, status model.ContestStatus) (int64, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockContestRepo) Delete(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockContestRepo) SetWinner(ctx context.Context, tx *sql.Tx, contestID, submissionID, winnerEmail, winnerName string) error {
	args := m.Called(ctx, tx, contestID, submissionID, winnerEmail, winnerName)
	return args.Error(0)
}

func (m *mockContestRepo) IncrementParticipation(ctx context.Context, tx *sql.Tx, contestID string) error {
	args := m.Called(ctx, tx, contestID)
	return args.Error(0)
}

func (m *mockContestRepo) Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if e := args.Get(0); e != nil {
		return e.([]model.LeaderboardEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockSubmissionRepo struct {
	mock.Mock
}

func (m *mockSubmissionRepo) Create(ctx context.Context, sub *model.Submission) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *mockSubmissionRepo) FindByIDForContest(ctx context.Context, id, contestID string) (*model.Submission, error) {
	args := m.Called(ctx, id, contestID)
	if s := args.Get(0); s != nil {
		return s.(*model.Submission), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSubmissionRepo) ListByContest(ctx context.Context, contestID string) ([]model.Submission, error) {
	args := m.Called(ctx, contestID)
	if s := args.Get(0); s != nil {
		return s.([]model.Submission), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSubmissionRepo) MarkWinner(ctx context.Context, tx *sql.Tx, id string) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *mockSubmissionRepo) CountWinsByUser(ctx context.Context, userEmail string) (int, error) {
	args := m.Called(ctx, userEmail)
	return args.Int(0), args.Error(1)
}

type mockPaymentRepo struct {
	mock.Mock
}

func (m *mockPaymentRepo) Create(ctx context.Context, tx *sql.Tx, payment *model.Payment) error {
	args := m.Called(ctx, tx, payment)
	return args.Error(0)
}

func (m *mockPaymentRepo) ExistsPaid(ctx context.Context, userEmail, contestID string) (bool, error) {
	args := m.Called(ctx, userEmail, contestID)
	return args.Bool(0), args.Error(1)
}

func (m *mockPaymentRepo) CountPaidByUser(ctx context.Context, userEmail string) (int, error) {
	args := m.Called(ctx, userEmail)
	return args.Int(0), args.Error(1)
}

func (m *mockPaymentRepo) ListPaidWithContests(ctx context.Context, userEmail string) ([]model.ParticipatedContest, error) {
	args := m.Called(ctx, userEmail)
	if p := args.Get(0); p != nil {
		return p.([]model.ParticipatedContest), args.Error(1)
	}
	return nil, args.Error(1)
}
