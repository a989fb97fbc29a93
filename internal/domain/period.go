package domain

import "time"

// Period полуинтервал аренды [Start, End)
type Period struct {
	Start time.Time
	End   time.Time
}

// IsValid returns true if the period is non-empty
func (p Period) IsValid() bool {
	return p.End.After(p.Start)
}

// Overlaps returns true if two half-open periods intersect
// [10:00, 12:00) и [12:00, 14:00) не пересекаются
func (p Period) Overlaps(other Period) bool {
	return p.Start.Before(other.End) && other.Start.Before(p.End)
}
