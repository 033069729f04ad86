package model

import (
	"time"
)

type ContestStatus string

const (
	ContestPending  ContestStatus = "pending"
	ContestApproved ContestStatus = "approved"
	ContestRejected ContestStatus = "rejected"
)

// ValidContestStatus reports whether s is an assignable moderation status.
func ValidContestStatus(s ContestStatus) bool {
	return s == ContestPending || s == ContestApproved || s == ContestRejected
}

type Contest struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name"`
	Slug               string        `json:"slug"`
	Image              string        `json:"image"`
	Description        string        `json:"description"`
	Price              float64       `json:"price"`
	PrizeMoney         float64       `json:"prizeMoney"`
	TaskInstruction    string        `json:"taskInstruction"`
	Type               string        `json:"type"`
	Deadline           *time.Time    `json:"deadline,omitempty"`
	CreatorEmail       string        `json:"creatorEmail"`
	Status             ContestStatus `json:"status"`
	ParticipationCount int           `json:"participationCount"`
	WinnerSubmissionID *string       `json:"winnerSubmissionId,omitempty"`
	WinnerUserEmail    *string       `json:"winnerUserEmail,omitempty"`
	WinnerUserName     *string       `json:"winnerUserName,omitempty"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`
}

// ContestPatch carries the creator-editable fields. Anything outside this
// whitelist (status, counters, winner fields) is not writable via the
// creator path.
type ContestPatch struct {
	Name            *string    `json:"name,omitempty"`
	Image           *string    `json:"image,omitempty"`
	Description     *string    `json:"description,omitempty"`
	Price           *float64   `json:"price,omitempty"`
	PrizeMoney      *float64   `json:"prizeMoney,omitempty"`
	TaskInstruction *string    `json:"taskInstruction,omitempty"`
	Type            *string    `json:"type,omitempty"`
	Deadline        *time.Time `json:"deadline,omitempty"`
}

// ContestPage is the pagination envelope for contest listings.
type ContestPage struct {
	Contests   []Contest `json:"contests"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	TotalPages int       `json:"totalPages"`
}
