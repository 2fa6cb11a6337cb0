package domain

import "time"

// TeamMember is a person work can be assigned to.
type TeamMember struct {
	ID         string
	Name       string
	Role       string
	Experience ExperienceLevel
	// VelocityMultiplier scales effort into scheduled days: 1.0 is baseline,
	// values above 1 finish the same effort faster.
	VelocityMultiplier float64
	// PTO entries in the order they were entered. They may overlap.
	PTO []PTOEntry
}

// PTOEntry is an inclusive range of days a member is away.
type PTOEntry struct {
	ID        string
	MemberID  string
	Reason    string
	StartDate time.Time
	EndDate   time.Time
}

// Holiday is a company-wide closure. Multi-day closures are a single range.
type Holiday struct {
	ID        string
	Name      string
	StartDate time.Time
	EndDate   time.Time
}
