package repository

import "time"

// MatchFilter narrows a match listing. Nil fields impose no constraint;
// set fields compose with AND. TeamID matches either side of the match.
type MatchFilter struct {
	SeasonID *int64
	TeamID   *int64
	Status   *string
	DateFrom *time.Time
	DateTo   *time.Time
}

// RoleCategory filters a player's scoring events by credit kind.
// "assists" covers both assist roles.
type RoleCategory string

const (
	RoleCategoryAll     RoleCategory = ""
	RoleCategoryGoals   RoleCategory = "goals"
	RoleCategoryAssists RoleCategory = "assists"
)

// ScoringEventFilter narrows a player's scoring-event listing.
type ScoringEventFilter struct {
	Role     RoleCategory
	SeasonID *int64
	TeamID   *int64
	DateFrom *time.Time
	DateTo   *time.Time
}
