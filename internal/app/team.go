package app

import "time"

type MemberView struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	Experience string  `json:"experience"`
	Velocity   float64 `json:"velocity_multiplier"`
	PTODays    int     `json:"pto_working_days"`
}

// PTOAddRequest books time off. Member is a member id or name.
type PTOAddRequest struct {
	Member string
	Start  time.Time
	End    time.Time
	Reason string
}

type PTOView struct {
	ID          string `json:"id"`
	MemberID    string `json:"member_id"`
	MemberName  string `json:"member_name"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	WorkingDays int    `json:"working_days"`
	Reason      string `json:"reason,omitempty"`
}

type HolidayAddRequest struct {
	Name  string
	Start time.Time
	End   time.Time
}

type HolidayView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	WorkingDays int    `json:"working_days"`
}
