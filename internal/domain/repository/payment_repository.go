package repository

import (
	"context"
	"database/sql"
	"fmt"

	"contesthub/internal/domain/model"
)

type PaymentRepository interface {
	Create(ctx context.Context, tx *sql.Tx, payment *model.Payment) error
	ExistsPaid(ctx context.Context, userEmail, contestID string) (bool, error)
	CountPaidByUser(ctx context.Context, userEmail string) (int, error)
	// ListPaidWithContests joins each paid payment with its contest; payments
	// whose contest has been deleted are dropped (inner join).
	ListPaidWithContests(ctx context.Context, userEmail string) ([]model.ParticipatedContest, error)
}

type pgPaymentRepository struct {
	db *sql.DB
}

func NewPgPaymentRepository(db *sql.DB) PaymentRepository {
	return &pgPaymentRepository{db: db}
}

func (r *pgPaymentRepository) Create(ctx context.Context, tx *sql.Tx, p *model.Payment) error {
	query := `INSERT INTO payments (id, user_email, contest_id, amount, transaction_id, status, paid_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, p.ID, p.UserEmail, p.ContestID, p.Amount, p.TransactionID, p.Status, p.PaidAt)
	} else {
		_, err = r.db.ExecContext(ctx, query, p.ID, p.UserEmail, p.ContestID, p.Amount, p.TransactionID, p.Status, p.PaidAt)
	}
	if err != nil {
		return fmt.Errorf("pgPaymentRepository.Create: %w", err)
	}
	return nil
}

func (r *pgPaymentRepository) ExistsPaid(ctx context.Context, userEmail, contestID string) (bool, error) {
	query := `SELECT EXISTS (
	            SELECT 1 FROM payments WHERE user_email = $1 AND contest_id = $2 AND status = $3
	          )`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userEmail, contestID, model.PaymentPaid).Scan(&exists); err != nil {
		return false, fmt.Errorf("pgPaymentRepository.ExistsPaid: %w", err)
	}
	return exists, nil
}

func (r *pgPaymentRepository) CountPaidByUser(ctx context.Context, userEmail string) (int, error) {
	query := `SELECT COUNT(*) FROM payments WHERE user_email = $1 AND status = $2`
	var count int
	if err := r.db.QueryRowContext(ctx, query, userEmail, model.PaymentPaid).Scan(&count); err != nil {
		return 0, fmt.Errorf("pgPaymentRepository.CountPaidByUser: %w", err)
	}
	return count, nil
}

func (r *pgPaymentRepository) ListPaidWithContests(ctx context.Context, userEmail string) ([]model.ParticipatedContest, error) {
	query := `
	    SELECT p.id, p.user_email, p.contest_id, p.amount, p.transaction_id, p.status, p.paid_at,
	           c.id, c.name, c.slug, c.image, c.description, c.price, c.prize_money, c.task_instruction,
	           c.type, c.deadline, c.creator_email, c.status, c.participation_count,
	           c.winner_submission_id, c.winner_user_email, c.winner_user_name, c.created_at, c.updated_at
	    FROM payments p
	    JOIN contests c ON c.id = p.contest_id
	    WHERE p.user_email = $1 AND p.status = $2
	    ORDER BY p.paid_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userEmail, model.PaymentPaid)
	if err != nil {
		return nil, fmt.Errorf("pgPaymentRepository.ListPaidWithContests query: %w", err)
	}
	defer rows.Close()

	result := []model.ParticipatedContest{}
	for rows.Next() {
		var pc model.ParticipatedContest
		p := &pc.Payment
		c := &pc.Contest
		err := rows.Scan(
			&p.ID, &p.UserEmail, &p.ContestID, &p.Amount, &p.TransactionID, &p.Status, &p.PaidAt,
			&c.ID, &c.Name, &c.Slug, &c.Image, &c.Description, &c.Price, &c.PrizeMoney, &c.TaskInstruction,
			&c.Type, &c.Deadline, &c.CreatorEmail, &c.Status, &c.ParticipationCount,
			&c.WinnerSubmissionID, &c.WinnerUserEmail, &c.WinnerUserName, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("pgPaymentRepository.ListPaidWithContests scan: %w", err)
		}
		result = append(result, pc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgPaymentRepository.ListPaidWithContests rows.Err: %w", err)
	}
	return result, nil
}
