package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"contesthub/internal/common"
	"contesthub/internal/domain/model"
)

type SubmissionRepository interface {
	Create(ctx context.Context, sub *model.Submission) error
	FindByIDForContest(ctx context.Context, id, contestID string) (*model.Submission, error)
	ListByContest(ctx context.Context, contestID string) ([]model.Submission, error)
	MarkWinner(ctx context.Context, tx *sql.Tx, id string) error
	CountWinsByUser(ctx context.Context, userEmail string) (int, error)
}

type pgSubmissionRepository struct {
	db *sql.DB
}

func NewPgSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &pgSubmissionRepository{db: db}
}

const submissionColumns = `id, contest_id, user_email, user_name, content, is_winner, submitted_at`

func scanSubmission(row interface{ Scan(...interface{}) error }) (*model.Submission, error) {
	s := &model.Submission{}
	err := row.Scan(&s.ID, &s.ContestID, &s.UserEmail, &s.UserName, &s.Content, &s.IsWinner, &s.SubmittedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *pgSubmissionRepository) Create(ctx context.Context, sub *model.Submission) error {
	query := `INSERT INTO submissions (id, contest_id, user_email, user_name, content, is_winner, submitted_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		sub.ID, sub.ContestID, sub.UserEmail, sub.UserName, sub.Content, sub.IsWinner, sub.SubmittedAt)
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.Create: %w", err)
	}
	return nil
}

func (r *pgSubmissionRepository) FindByIDForContest(ctx context.Context, id, contestID string) (*model.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = $1 AND contest_id = $2`
	sub, err := scanSubmission(r.db.QueryRowContext(ctx, query, id, contestID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgSubmissionRepository.FindByIDForContest: %w", err)
	}
	return sub, nil
}

func (r *pgSubmissionRepository) ListByContest(ctx context.Context, contestID string) ([]model.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions
	          WHERE contest_id = $1 ORDER BY submitted_at DESC`
	rows, err := r.db.QueryContext(ctx, query, contestID)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.ListByContest query: %w", err)
	}
	defer rows.Close()

	subs := []model.Submission{}
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("pgSubmissionRepository.ListByContest scan: %w", err)
		}
		subs = append(subs, *sub)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.ListByContest rows.Err: %w", err)
	}
	return subs, nil
}

func (r *pgSubmissionRepository) MarkWinner(ctx context.Context, tx *sql.Tx, id string) error {
	query := `UPDATE submissions SET is_winner = TRUE WHERE id = $1`

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, id)
	} else {
		_, err = r.db.ExecContext(ctx, query, id)
	}
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.MarkWinner: %w", err)
	}
	return nil
}

func (r *pgSubmissionRepository) CountWinsByUser(ctx context.Context, userEmail string) (int, error) {
	query := `SELECT COUNT(*) FROM submissions WHERE user_email = $1 AND is_winner = TRUE`
	var count int
	if err := r.db.QueryRowContext(ctx, query, userEmail).Scan(&count); err != nil {
		return 0, fmt.Errorf("pgSubmissionRepository.CountWinsByUser: %w", err)
	}
	return count, nil
}
