package service

import (
	"strings"

	"github.com/maxviazov/hockey-stats-service/internal/repository"
)

// normalizePaging clamps the requested window and falls back to the
// default window when the caller supplied nothing at all.
func normalizePaging(p repository.Paging) repository.Paging {
	if p == (repository.Paging{}) {
		return repository.DefaultPaging()
	}
	return repository.NewPaging(p.Page, p.PageSize)
}

const defaultMatchStatus = "scheduled"

// normalizeStatus trims the free-form status and fills the default for
// empty input. Arbitrary values stay as-is; historical imports carry
// statuses no closed set would cover.
func normalizeStatus(status string) string {
	s := strings.TrimSpace(status)
	if s == "" {
		return defaultMatchStatus
	}
	return s
}

func isValidRoleCategory(rc repository.RoleCategory) bool {
	switch rc {
	case repository.RoleCategoryAll, repository.RoleCategoryGoals, repository.RoleCategoryAssists:
		return true
	default:
		return false
	}
}
