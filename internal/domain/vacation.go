package domain

import (
	"fmt"
	"strings"
	"time"
)

// Vacation is the in-memory record of one member's leave of absence.
// AdminNotice points at the message posted to the admin channel so the
// return flow can take it down.
type Vacation struct {
	Member      MemberID
	Duration    string
	EndsAt      time.Time
	AdminNotice MessageID
}

// ParseVacationDuration understands the handful of spellings members
// actually type. Unknown spellings are a validation error, not a guess.
func ParseVacationDuration(raw string) (time.Duration, string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "3д", "3дня", "3 дня":
		return 3 * 24 * time.Hour, "1-3 дня", nil
	case "неделя", "7д", "7дней":
		return 7 * 24 * time.Hour, "неделю", nil
	case "2недели", "2 недели", "14д", "14дней":
		return 14 * 24 * time.Hour, "2 недели", nil
	default:
		return 0, "", fmt.Errorf("%w: unknown duration %q (use 3д, неделя, 2недели)", ErrValidation, raw)
	}
}
