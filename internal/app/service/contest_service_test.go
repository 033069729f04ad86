package service_test

import (
	"context"
	"testing"

	"contesthub/internal/app/service"
	"contesthub/internal/common"
	"contesthub/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestContestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("forces pending status, zero count and a slug", func(t *testing.T) {
		contests := new(mockContestRepo)
		contests.On("Create", ctx, mock.MatchedBy(func(c *model.Contest) bool {
			return c.Status == model.ContestPending &&
				c.ParticipationCount == 0 &&
				c.Slug == "logo-design-battle" &&
				c.CreatorEmail == "creator@example.com" &&
				c.WinnerSubmissionID == nil
		})).Return(nil)

		svc := service.NewContestService(contests, nil)
		contest, err := svc.Create(ctx, "creator@example.com", service.CreateContestRequest{
			Name:       "Logo Design Battle",
			Price:      25,
			PrizeMoney: 500,
			Type:       "design",
		})

		require.NoError(t, err)
		assert.Equal(t, model.ContestPending, contest.Status)
		assert.Equal(t, "logo-design-battle", contest.Slug)
		contests.AssertExpectations(t)
	})

	t.Run("rejects a nameless contest", func(t *testing.T) {
		svc := service.NewContestService(new(mockContestRepo), nil)
		_, err := svc.Create(ctx, "creator@example.com", service.CreateContestRequest{})
		assert.ErrorIs(t, err, common.ErrValidation)
	})
}

func TestContestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("clamps page and limit to defaults", func(t *testing.T) {
		contests := new(mockContestRepo)
		contests.On("ListApproved", ctx, "", "", service.DefaultPublicPageSize, 0).
			Return([]model.Contest{}, 0, nil)

		svc := service.NewContestService(contests, nil)
		_, err := svc.List(ctx, service.ListContestsQuery{Page: -3, Limit: 5000})
		require.NoError(t, err)
		contests.AssertExpectations(t)
	})

	t.Run("computes total pages as a ceiling", func(t *testing.T) {
		contests := new(mockContestRepo)
		contests.On("ListApproved", ctx, "logo", "design", 9, 9).
			Return(make([]model.Contest, 9), 20, nil)

		svc := service.NewContestService(contests, nil)
		page, err := svc.List(ctx, service.ListContestsQuery{
			Search: "logo",
			Type:   "design",
			Page:   2,
			Limit:  9,
		})

		require.NoError(t, err)
		assert.Equal(t, 20, page.Total)
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 3, page.TotalPages)
	})
}

func TestContestService_DeleteByCreator(t *testing.T) {
	ctx := context.Background()

	t.Run("zero deleted rows is the caller's problem", func(t *testing.T) {
		contests := new(mockContestRepo)
		contests.On("DeleteByCreator", ctx, "contest-1", "creator@example.com").Return(int64(0), nil)

		svc := service.NewContestService(contests, nil)
		err := svc.DeleteByCreator(ctx, "creator@example.com", "contest-1")
		assert.ErrorIs(t, err, common.ErrBadRequest)
	})

	t.Run("deletes an owned pending contest", func(t *testing.T) {
		contests := new(mockContestRepo)
		contests.On("DeleteByCreator", ctx, "contest-1", "creator@example.com").Return(int64(1), nil)

		svc := service.NewContestService(contests, nil)
		require.NoError(t, svc.DeleteByCreator(ctx, "creator@example.com", "contest-1"))
	})
}

func TestContestService_UpdateByCreator(t *testing.T) {
	ctx := context.Background()
	newName := "Renamed"

	contests := new(mockContestRepo)
	contests.On("UpdateByCreator", ctx, "contest-1", "creator@example.com", mock.Anything).Return(int64(0), nil)

	svc := service.NewContestService(contests, nil)
	n, err := svc.UpdateByCreator(ctx, "creator@example.com", "contest-1", model.ContestPatch{Name: &newName})

	// A non-matching contest is a silent no-op, not an error.
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestContestService_SetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects unknown statuses", func(t *testing.T) {
		svc := service.NewContestService(new(mockContestRepo), nil)
		err := svc.SetStatus(ctx, "contest-1", "archived")
		assert.ErrorIs(t, err, common.ErrValidation)
	})

	t.Run("missing contest is not found", func(t *testing.T) {
		contests := new(mockContestRepo)
		contests.On("UpdateStatus", ctx, "missing", model.ContestApproved).Return(int64(0), nil)

		svc := service.NewContestService(contests, nil)
		err := svc.SetStatus(ctx, "missing", model.ContestApproved)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("approves a pending contest", func(t *testing.T) {
		contests := new(mockContestRepo)
		contests.On("UpdateStatus", ctx, "contest-1", model.ContestApproved).Return(int64(1), nil)

		svc := service.NewContestService(contests, nil)
		require.NoError(t, svc.SetStatus(ctx, "contest-1", model.ContestApproved))
	})
}

func TestContestService_ListForAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects an invalid status filter", func(t *testing.T) {
		svc := service.NewContestService(new(mockContestRepo), nil)
		_, err := svc.ListForAdmin(ctx, service.AdminListQuery{Status: "bogus"})
		assert.ErrorIs(t, err, common.ErrValidation)
	})

	t.Run("empty filter lists everything", func(t *testing.T) {
		contests := new(mockContestRepo)
		contests.On("ListAll", ctx, model.ContestStatus(""), service.DefaultAdminPageSize, 0).
			Return([]model.Contest{{ID: "c1"}}, 1, nil)

		svc := service.NewContestService(contests, nil)
		page, err := svc.ListForAdmin(ctx, service.AdminListQuery{})

		require.NoError(t, err)
		assert.Len(t, page.Contests, 1)
		assert.Equal(t, 1, page.TotalPages)
	})
}

func TestContestService_Popular_NoCache(t *testing.T) {
	ctx := context.Background()

	contests := new(mockContestRepo)
	contests.On("ListPopular", ctx, mock.Anything).Return([]model.Contest{{ID: "c1"}, {ID: "c2"}}, nil)

	// A nil cache must behave as a permanent miss.
	svc := service.NewContestService(contests, nil)
	popular, err := svc.Popular(ctx)

	require.NoError(t, err)
	assert.Len(t, popular, 2)
	contests.AssertExpectations(t)
}
