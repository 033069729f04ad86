package model

import "time"

type Submission struct {
	ID          string    `json:"id"`
	ContestID   string    `json:"contestId"`
	UserEmail   string    `json:"userEmail"`
	UserName    string    `json:"userName"`
	Content     string    `json:"content"`
	IsWinner    bool      `json:"isWinner"`
	SubmittedAt time.Time `json:"submittedAt"`
}
