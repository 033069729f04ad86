package model

import "time"

// PaymentPaid is the only modeled payment state; failed or pending charges
// never reach the ledger.
const PaymentPaid = "paid"

type Payment struct {
	ID            string    `json:"id"`
	UserEmail     string    `json:"userEmail"`
	ContestID     string    `json:"contestId"`
	Amount        float64   `json:"amount"`
	TransactionID string    `json:"transactionId"`
	Status        string    `json:"status"`
	PaidAt        time.Time `json:"paidAt"`
}

// ParticipatedContest is a paid payment joined with its contest.
type ParticipatedContest struct {
	Payment Payment `json:"payment"`
	Contest Contest `json:"contest"`
}
