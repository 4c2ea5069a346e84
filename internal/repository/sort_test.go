package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSortOrder(t *testing.T) {
	assert.Equal(t, SortDesc, ParseSortOrder("desc"))
	assert.Equal(t, SortDesc, ParseSortOrder("  DESC "))
	assert.Equal(t, SortAsc, ParseSortOrder("asc"))
	assert.Equal(t, SortAsc, ParseSortOrder("sideways"))
	assert.Equal(t, SortAsc, ParseSortOrder(""))
}

func TestParseMatchSortField(t *testing.T) {
	assert.Equal(t, MatchSortStatus, ParseMatchSortField("status"))
	assert.Equal(t, MatchSortSeasonName, ParseMatchSortField("season"))
	assert.Equal(t, MatchSortSeasonName, ParseMatchSortField("event"))
	// Unknown input falls back to the entity default.
	assert.Equal(t, MatchSortDate, ParseMatchSortField("bogus"))
	assert.Equal(t, MatchSortDate, ParseMatchSortField(""))
}

func TestMatchSortField_Column(t *testing.T) {
	assert.Equal(t, "m.match_date", MatchSortDate.Column())
	assert.Equal(t, "m.status", MatchSortStatus.Column())
	assert.Equal(t, "s.name", MatchSortSeasonName.Column())
}

func TestParseScoringEventSortField(t *testing.T) {
	assert.Equal(t, ScoringEventSortRole, ParseScoringEventSortField("role"))
	assert.Equal(t, ScoringEventSortPeriod, ParseScoringEventSortField("period"))
	assert.Equal(t, ScoringEventSortSeasonName, ParseScoringEventSortField("season_name"))
	assert.Equal(t, ScoringEventSortMatchDate, ParseScoringEventSortField("anything"))
}

func TestScoringEventSortField_Column(t *testing.T) {
	assert.Equal(t, "match_date", ScoringEventSortMatchDate.Column())
	assert.Equal(t, "season_name", ScoringEventSortSeasonName.Column())
	assert.Equal(t, "role", ScoringEventSortRole.Column())
	assert.Equal(t, "period", ScoringEventSortPeriod.Column())
}
