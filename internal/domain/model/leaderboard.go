package model

// LeaderboardEntry ranks a winner by contests won, prize total breaking ties.
// Name falls back to the email when no user record matches the winner email.
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	UserEmail  string  `json:"userEmail"`
	Name       string  `json:"name"`
	PhotoURL   *string `json:"photoURL,omitempty"`
	Role       *string `json:"role,omitempty"`
	Wins       int     `json:"wins"`
	TotalPrize float64 `json:"totalPrize"`
}
