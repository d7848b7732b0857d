package domain

import "time"

// Member is a registered parishioner. Telephone is optional; members
// without one are still counted as notification recipients and get a
// failed log entry instead of being silently skipped.
type Member struct {
	ID          string
	Name        string
	Code        string
	Telephone   string
	Active      bool
	MinistryID  string
	CommunityID string
	CreatedAt   time.Time
}

type Ministry struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

type Community struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
