// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes without behavior.
package model

import "time"

// Team represents a hockey team. The core entity holds only its own
// attributes; joined display names live on read models.
type Team struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Season is the hosting event a match belongs to (a league season, a
// tournament). Its name is the joined display field on listings.
type Season struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	StartsOn  *time.Time `json:"starts_on,omitempty"`
	EndsOn    *time.Time `json:"ends_on,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Player represents an athlete.
type Player struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Match represents a scheduled or played game between two teams.
// HomeScoreUnidentified/AwayScoreUnidentified count goals that have no
// individual score event, typically historical imports. A match's real
// score is unidentified + identified events and is computed by the
// match detail aggregator, never stored.
type Match struct {
	ID                    int64      `json:"id"`
	SeasonID              int64      `json:"season_id"`
	HomeTeamID            int64      `json:"home_team_id"`
	AwayTeamID            int64      `json:"away_team_id"`
	HomeScoreUnidentified int        `json:"home_score_unidentified"`
	AwayScoreUnidentified int        `json:"away_score_unidentified"`
	MatchDate             *time.Time `json:"match_date,omitempty"`
	Status                string     `json:"status"` // free-form: scheduled, in_progress, completed, ...
	Venue                 *string    `json:"venue,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// MatchDraft carries caller-supplied match fields for create/update.
type MatchDraft struct {
	SeasonID              int64      `json:"season_id"`
	HomeTeamID            int64      `json:"home_team_id"`
	AwayTeamID            int64      `json:"away_team_id"`
	HomeScoreUnidentified int        `json:"home_score_unidentified"`
	AwayScoreUnidentified int        `json:"away_score_unidentified"`
	MatchDate             *time.Time `json:"match_date,omitempty"`
	Status                string     `json:"status"`
	Venue                 *string    `json:"venue,omitempty"`
}

// MatchListItem is a Match with joined display names for listings.
// Read-only projection; the core entity keeps only foreign keys.
type MatchListItem struct {
	Match
	SeasonName   string `json:"season_name"`
	HomeTeamName string `json:"home_team_name"`
	AwayTeamName string `json:"away_team_name"`
}

// ScoreEvent is one individually tracked goal within a match. A nil
// ScorerID means the goal is tracked but its scorer is unknown, which
// is distinct from the match-level unidentified counters.
type ScoreEvent struct {
	ID          int64     `json:"id"`
	MatchID     int64     `json:"match_id"`
	TeamID      int64     `json:"team_id"`
	ScorerID    *int64    `json:"scorer_id,omitempty"`
	Assist1ID   *int64    `json:"assist1_id,omitempty"`
	Assist2ID   *int64    `json:"assist2_id,omitempty"`
	Period      int       `json:"period"` // 1-3 regulation, 4 overtime, 5 shootout
	TimeMinutes *int      `json:"time_minutes,omitempty"`
	TimeSeconds *int      `json:"time_seconds,omitempty"`
	GoalType    *string   `json:"goal_type,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ScoreEventDraft carries caller-supplied score event fields.
type ScoreEventDraft struct {
	MatchID     int64   `json:"match_id"`
	TeamID      int64   `json:"team_id"`
	ScorerID    *int64  `json:"scorer_id,omitempty"`
	Assist1ID   *int64  `json:"assist1_id,omitempty"`
	Assist2ID   *int64  `json:"assist2_id,omitempty"`
	Period      int     `json:"period"`
	TimeMinutes *int    `json:"time_minutes,omitempty"`
	TimeSeconds *int    `json:"time_seconds,omitempty"`
	GoalType    *string `json:"goal_type,omitempty"`
}

// TeamScore is a per-team score breakdown inside a match detail.
type TeamScore struct {
	TeamID       int64 `json:"team_id"`
	Unidentified int   `json:"unidentified"`
	Identified   int   `json:"identified"`
	Total        int   `json:"total"`
}

// MatchDetail composes a match with its ordered score events and the
// per-team identified/total breakdown. Not persisted; always recomputed.
type MatchDetail struct {
	Match     Match        `json:"match"`
	Events    []ScoreEvent `json:"events"`
	HomeScore TeamScore    `json:"home_score"`
	AwayScore TeamScore    `json:"away_score"`
}

// ScoringRole tags which credit a player holds on a score event.
type ScoringRole string

const (
	RoleGoal            ScoringRole = "goal"
	RoleAssistPrimary   ScoringRole = "assist_primary"
	RoleAssistSecondary ScoringRole = "assist_secondary"
)

// PlayerScoringEvent is one (score event, role) row in a player's
// scoring history, with joined match/season display fields.
type PlayerScoringEvent struct {
	ScoreEventID int64       `json:"score_event_id"`
	MatchID      int64       `json:"match_id"`
	MatchDate    *time.Time  `json:"match_date,omitempty"`
	SeasonID     int64       `json:"season_id"`
	SeasonName   string      `json:"season_name"`
	TeamID       int64       `json:"team_id"`
	Role         ScoringRole `json:"role"`
	Period       int         `json:"period"`
	TimeMinutes  *int        `json:"time_minutes,omitempty"`
	TimeSeconds  *int        `json:"time_seconds,omitempty"`
	GoalType     *string     `json:"goal_type,omitempty"`
}

// PlayerSeasonStats holds a player's per-season totals. Derived from the
// score event stream on demand and never persisted.
type PlayerSeasonStats struct {
	SeasonID   int64  `json:"season_id"`
	SeasonName string `json:"season_name"`
	Goals      int    `json:"goals"`
	Assists    int    `json:"assists"`
	Points     int    `json:"points"`
}

// TeamParticipation links a team to a season it plays in.
// At most one row per (team, season) pair.
type TeamParticipation struct {
	ID       int64 `json:"id"`
	TeamID   int64 `json:"team_id"`
	SeasonID int64 `json:"season_id"`
}

// PlayerContract links a player to a team's participation in a season.
// At most one row per (participation, player) pair.
type PlayerContract struct {
	ID                  int64 `json:"id"`
	TeamParticipationID int64 `json:"team_participation_id"`
	PlayerID            int64 `json:"player_id"`
}
