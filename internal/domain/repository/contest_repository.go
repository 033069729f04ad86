package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"contesthub/internal/common"
	"contesthub/internal/domain/model"
)

type ContestRepository interface {
	Create(ctx context.Context, contest *model.Contest) error
	FindByID(ctx context.Context, id string) (*model.Contest, error)
	FindBySlug(ctx context.Context, slug string) (*model.Contest, error)

	ListApproved(ctx context.Context, search, contestType string, limit, offset int) ([]model.Contest, int, error)
	ListPopular(ctx context.Context, limit int) ([]model.Contest, error)
	ListByCreator(ctx context.Context, creatorEmail string) ([]model.Contest, error)
	ListAll(ctx context.Context, status model.ContestStatus, limit, offset int) ([]model.Contest, int, error)
	ListWonBy(ctx context.Context, winnerEmail string) ([]model.Contest, error)

	// UpdateByCreator and DeleteByCreator are scoped to the owning creator's
	// still-pending contests; both report the number of affected rows.
	UpdateByCreator(ctx context.Context, id, creatorEmail string, patch model.ContestPatch) (int64, error)
	DeleteByCreator(ctx context.Context, id, creatorEmail string) (int64, error)

	UpdateStatus(ctx context.Context, id string, status model.ContestStatus) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)

	SetWinner(ctx context.Context, tx *sql.Tx, contestID, submissionID, winnerEmail, winnerName string) error
	IncrementParticipation(ctx context.Context, tx *sql.Tx, contestID string) error

	Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
}

type pgContestRepository struct {
	db *sql.DB
}

func NewPgContestRepository(db *sql.DB) ContestRepository {
	return &pgContestRepository{db: db}
}

const contestColumns = `id, name, slug, image, description, price, prize_money, task_instruction,
	type, deadline, creator_email, status, participation_count,
	winner_submission_id, winner_user_email, winner_user_name, created_at, updated_at`

func scanContest(row interface{ Scan(...interface{}) error }) (*model.Contest, error) {
	c := &model.Contest{}
	err := row.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Image, &c.Description, &c.Price, &c.PrizeMoney, &c.TaskInstruction,
		&c.Type, &c.Deadline, &c.CreatorEmail, &c.Status, &c.ParticipationCount,
		&c.WinnerSubmissionID, &c.WinnerUserEmail, &c.WinnerUserName, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *pgContestRepository) Create(ctx context.Context, c *model.Contest) error {
	query := `INSERT INTO contests (id, name, slug, image, description, price, prize_money,
	            task_instruction, type, deadline, creator_email, status, participation_count, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Name, c.Slug, c.Image, c.Description, c.Price, c.PrizeMoney,
		c.TaskInstruction, c.Type, c.Deadline, c.CreatorEmail, c.Status, c.ParticipationCount, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("pgContestRepository.Create: %w", err)
	}
	return nil
}

func (r *pgContestRepository) FindByID(ctx context.Context, id string) (*model.Contest, error) {
	query := `SELECT ` + contestColumns + ` FROM contests WHERE id = $1`
	contest, err := scanContest(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgContestRepository.FindByID: %w", err)
	}
	return contest, nil
}

func (r *pgContestRepository) FindBySlug(ctx context.Context, slug string) (*model.Contest, error) {
	query := `SELECT ` + contestColumns + ` FROM contests WHERE slug = $1 ORDER BY created_at DESC LIMIT 1`
	contest, err := scanContest(r.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgContestRepository.FindBySlug: %w", err)
	}
	return contest, nil
}

func (r *pgContestRepository) ListApproved(ctx context.Context, search, contestType string, limit, offset int) ([]model.Contest, int, error) {
	conditions := []string{"status = $1"}
	args := []interface{}{model.ContestApproved}
	argID := 2

	if search != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argID))
		args = append(args, "%"+search+"%")
		argID++
	}
	if contestType != "" {
		conditions = append(conditions, fmt.Sprintf("type = $%d", argID))
		args = append(args, contestType)
		argID++
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contests`+whereClause, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("pgContestRepository.ListApproved count: %w", err)
	}

	query := `SELECT ` + contestColumns + ` FROM contests` + whereClause +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argID, argID+1)
	args = append(args, limit, offset)

	contests, err := r.queryContests(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("pgContestRepository.ListApproved: %w", err)
	}
	return contests, total, nil
}

func (r *pgContestRepository) ListPopular(ctx context.Context, limit int) ([]model.Contest, error) {
	query := `SELECT ` + contestColumns + ` FROM contests
	          WHERE status = $1 ORDER BY participation_count DESC LIMIT $2`
	contests, err := r.queryContests(ctx, query, model.ContestApproved, limit)
	if err != nil {
		return nil, fmt.Errorf("pgContestRepository.ListPopular: %w", err)
	}
	return contests, nil
}

func (r *pgContestRepository) ListByCreator(ctx context.Context, creatorEmail string) ([]model.Contest, error) {
	query := `SELECT ` + contestColumns + ` FROM contests
	          WHERE creator_email = $1 ORDER BY created_at DESC`
	contests, err := r.queryContests(ctx, query, creatorEmail)
	if err != nil {
		return nil, fmt.Errorf("pgContestRepository.ListByCreator: %w", err)
	}
	return contests, nil
}

func (r *pgContestRepository) ListAll(ctx context.Context, status model.ContestStatus, limit, offset int) ([]model.Contest, int, error) {
	var conditions []string
	var args []interface{}
	argID := 1

	if status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argID))
		args = append(args, status)
		argID++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contests`+whereClause, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("pgContestRepository.ListAll count: %w", err)
	}

	query := `SELECT ` + contestColumns + ` FROM contests` + whereClause +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argID, argID+1)
	args = append(args, limit, offset)

	contests, err := r.queryContests(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("pgContestRepository.ListAll: %w", err)
	}
	return contests, total, nil
}

func (r *pgContestRepository) ListWonBy(ctx context.Context, winnerEmail string) ([]model.Contest, error) {
	query := `SELECT ` + contestColumns + ` FROM contests
	          WHERE winner_user_email = $1 ORDER BY created_at DESC`
	contests, err := r.queryContests(ctx, query, winnerEmail)
	if err != nil {
		return nil, fmt.Errorf("pgContestRepository.ListWonBy: %w", err)
	}
	return contests, nil
}

func (r *pgContestRepository) UpdateByCreator(ctx context.Context, id, creatorEmail string, patch model.ContestPatch) (int64, error) {
	var sets []string
	var args []interface{}
	argID := 1

	addSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if patch.Name != nil {
		addSet("name", *patch.Name)
	}
	if patch.Image != nil {
		addSet("image", *patch.Image)
	}
	if patch.Description != nil {
		addSet("description", *patch.Description)
	}
	if patch.Price != nil {
		addSet("price", *patch.Price)
	}
	if patch.PrizeMoney != nil {
		addSet("prize_money", *patch.PrizeMoney)
	}
	if patch.TaskInstruction != nil {
		addSet("task_instruction", *patch.TaskInstruction)
	}
	if patch.Type != nil {
		addSet("type", *patch.Type)
	}
	if patch.Deadline != nil {
		addSet("deadline", *patch.Deadline)
	}

	if len(sets) == 0 {
		return 0, nil
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")

	query := fmt.Sprintf(
		`UPDATE contests SET %s WHERE id = $%d AND creator_email = $%d AND status = $%d`,
		strings.Join(sets, ", "), argID, argID+1, argID+2)
	args = append(args, id, creatorEmail, model.ContestPending)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("pgContestRepository.UpdateByCreator: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pgContestRepository.UpdateByCreator rows affected: %w", err)
	}
	return n, nil
}

func (r *pgContestRepository) DeleteByCreator(ctx context.Context, id, creatorEmail string) (int64, error) {
	query := `DELETE FROM contests WHERE id = $1 AND creator_email = $2 AND status = $3`
	res, err := r.db.ExecContext(ctx, query, id, creatorEmail, model.ContestPending)
	if err != nil {
		return 0, fmt.Errorf("pgContestRepository.DeleteByCreator: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pgContestRepository.DeleteByCreator rows affected: %w", err)
	}
	return n, nil
}

func (r *pgContestRepository) UpdateStatus(ctx context.Context, id string, status model.ContestStatus) (int64, error) {
	query := `UPDATE contests SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return 0, fmt.Errorf("pgContestRepository.UpdateStatus: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pgContestRepository.UpdateStatus rows affected: %w", err)
	}
	return n, nil
}

func (r *pgContestRepository) Delete(ctx context.Context, id string) (int64, error) {
	query := `DELETE FROM contests WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("pgContestRepository.Delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pgContestRepository.Delete rows affected: %w", err)
	}
	return n, nil
}

// SetWinner stamps the winner fields only while they are still unset; the
// guard makes the single-winner invariant hold even under concurrent calls.
func (r *pgContestRepository) SetWinner(ctx context.Context, tx *sql.Tx, contestID, submissionID, winnerEmail, winnerName string) error {
	query := `UPDATE contests SET
	            winner_submission_id = $1, winner_user_email = $2, winner_user_name = $3,
	            updated_at = CURRENT_TIMESTAMP
	          WHERE id = $4 AND winner_submission_id IS NULL`

	var res sql.Result
	var err error
	if tx != nil {
		res, err = tx.ExecContext(ctx, query, submissionID, winnerEmail, winnerName, contestID)
	} else {
		res, err = r.db.ExecContext(ctx, query, submissionID, winnerEmail, winnerName, contestID)
	}
	if err != nil {
		return fmt.Errorf("pgContestRepository.SetWinner: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgContestRepository.SetWinner rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("winner already declared for this contest: %w", common.ErrConflict)
	}
	return nil
}

func (r *pgContestRepository) IncrementParticipation(ctx context.Context, tx *sql.Tx, contestID string) error {
	query := `UPDATE contests SET participation_count = participation_count + 1,
	            updated_at = CURRENT_TIMESTAMP
	          WHERE id = $1`

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, contestID)
	} else {
		_, err = r.db.ExecContext(ctx, query, contestID)
	}
	if err != nil {
		return fmt.Errorf("pgContestRepository.IncrementParticipation: %w", err)
	}
	return nil
}

func (r *pgContestRepository) Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	query := `
	    SELECT c.winner_user_email,
	           COALESCE(u.name, c.winner_user_email) AS display_name,
	           u.photo_url, u.role,
	           COUNT(*) AS wins,
	           COALESCE(SUM(c.prize_money), 0) AS total_prize
	    FROM contests c
	    LEFT JOIN users u ON u.email = c.winner_user_email
	    WHERE c.winner_user_email IS NOT NULL
	    GROUP BY c.winner_user_email, u.name, u.photo_url, u.role
	    ORDER BY wins DESC, total_prize DESC
	    LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("pgContestRepository.Leaderboard query: %w", err)
	}
	defer rows.Close()

	entries := []model.LeaderboardEntry{}
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.UserEmail, &e.Name, &e.PhotoURL, &e.Role, &e.Wins, &e.TotalPrize); err != nil {
			return nil, fmt.Errorf("pgContestRepository.Leaderboard scan: %w", err)
		}
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgContestRepository.Leaderboard rows.Err: %w", err)
	}
	return entries, nil
}

func (r *pgContestRepository) queryContests(ctx context.Context, query string, args ...interface{}) ([]model.Contest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contests := []model.Contest{}
	for rows.Next() {
		contest, err := scanContest(rows)
		if err != nil {
			return nil, err
		}
		contests = append(contests, *contest)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return contests, nil
}
