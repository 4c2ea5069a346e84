package repository

import "strings"

// SortOrder is the direction of a listing sort. Unrecognized input
// defaults to ascending.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder normalizes a raw order string; anything but "desc"
// means ascending.
func ParseSortOrder(raw string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(raw), string(SortDesc)) {
		return SortDesc
	}
	return SortAsc
}

// SQL returns the ORDER BY keyword for the order.
func (o SortOrder) SQL() string {
	if o == SortDesc {
		return "DESC"
	}
	return "ASC"
}

// Each listable entity gets its own closed sort-field enumeration. Every
// variant maps to exactly one backing column or expression, and parsing
// unknown input falls back to the entity's fixed default. I deliberately
// keep one independent enum per entity instead of a shared interface.

// MatchSortField selects the primary sort key for match listings.
type MatchSortField string

const (
	MatchSortDate       MatchSortField = "date"
	MatchSortStatus     MatchSortField = "status"
	MatchSortSeasonName MatchSortField = "season"
)

// ParseMatchSortField maps a raw string to a sort field, defaulting to
// match date.
func ParseMatchSortField(raw string) MatchSortField {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "status":
		return MatchSortStatus
	case "season", "season_name", "event":
		return MatchSortSeasonName
	default:
		return MatchSortDate
	}
}

// Column returns the SQL expression backing the field. Match dates can
// be NULL for legacy rows, so the date key sorts nulls last.
func (f MatchSortField) Column() string {
	switch f {
	case MatchSortStatus:
		return "m.status"
	case MatchSortSeasonName:
		return "s.name"
	default:
		return "m.match_date"
	}
}

// ScoringEventSortField selects the primary sort key for a player's
// scoring-event listing.
type ScoringEventSortField string

const (
	ScoringEventSortMatchDate  ScoringEventSortField = "match_date"
	ScoringEventSortSeasonName ScoringEventSortField = "season"
	ScoringEventSortRole       ScoringEventSortField = "role"
	ScoringEventSortPeriod     ScoringEventSortField = "period"
)

// ParseScoringEventSortField maps a raw string to a sort field,
// defaulting to match date.
func ParseScoringEventSortField(raw string) ScoringEventSortField {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "season", "season_name", "event":
		return ScoringEventSortSeasonName
	case "role":
		return ScoringEventSortRole
	case "period":
		return ScoringEventSortPeriod
	default:
		return ScoringEventSortMatchDate
	}
}

// Column returns the SQL expression backing the field, relative to the
// per-role projection produced by the stats repository.
func (f ScoringEventSortField) Column() string {
	switch f {
	case ScoringEventSortSeasonName:
		return "season_name"
	case ScoringEventSortRole:
		return "role"
	case ScoringEventSortPeriod:
		return "period"
	default:
		return "match_date"
	}
}
