package models

import "github.com/google/uuid"

// Standing is a computed row of the league table. It is never persisted on its own.
type Standing struct {
	Rank           int       `json:"rank"`
	TeamID         uuid.UUID `json:"teamId"`
	Team           *Team     `json:"team,omitempty"`
	MatchesPlayed  int       `json:"matchesPlayed"`
	Wins           int       `json:"wins"`
	Draws          int       `json:"draws"`
	Losses         int       `json:"losses"`
	GoalsFor       int       `json:"goalsFor"`
	GoalsAgainst   int       `json:"goalsAgainst"`
	GoalDifference int       `json:"goalDifference"`
	Points         int       `json:"points"`
}
