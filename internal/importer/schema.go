package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// PlanSchema is the top-level JSON structure of a release plan file.
type PlanSchema struct {
	Release  ReleaseImport   `json:"release"`
	Sprints  []SprintImport  `json:"sprints"`
	Team     []MemberImport  `json:"team,omitempty"`
	Holidays []HolidayImport `json:"holidays,omitempty"`
	Features []FeatureImport `json:"features"`
}

// ReleaseImport defines the release header. Both dates are optional; without
// them tickets are not clamped to a release window.
type ReleaseImport struct {
	ID        string  `json:"id,omitempty"`
	Name      string  `json:"name"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
}

type SprintImport struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type MemberImport struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Role       string      `json:"role,omitempty"`
	Experience string      `json:"experience,omitempty"`
	Velocity   *float64    `json:"velocity_multiplier,omitempty"`
	PTO        []PTOImport `json:"pto,omitempty"`
}

type PTOImport struct {
	ID        string `json:"id,omitempty"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason,omitempty"`
}

// HolidayImport is a closure range. Date is shorthand for a single-day
// holiday and is used when StartDate is empty.
type HolidayImport struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Date      string `json:"date,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

type FeatureImport struct {
	ID      string         `json:"id,omitempty"`
	Name    string         `json:"name"`
	Tickets []TicketImport `json:"tickets"`
}

// TicketImport defines a work item. AssignedTo may name a member by id or
// by display name.
type TicketImport struct {
	ID           string   `json:"id,omitempty"`
	Title        string   `json:"title"`
	Status       string   `json:"status,omitempty"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	EffortDays   *float64 `json:"effort_days,omitempty"`
	StoryPoints  *float64 `json:"story_points,omitempty"`
	AssignedTo   string   `json:"assigned_to,omitempty"`
	RequiredRole string   `json:"required_role,omitempty"`
	DependsOn    []string `json:"depends_on,omitempty"`
}

// LoadPlanSchema reads and parses a plan JSON file.
func LoadPlanSchema(path string) (*PlanSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParsePlanSchema(data)
}

// ParsePlanSchema parses plan JSON. Unknown fields are rejected so typos in
// hand-written plans surface instead of silently dropping data.
func ParsePlanSchema(data []byte) (*PlanSchema, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var schema PlanSchema
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("parsing plan file: %w", err)
	}
	return &schema, nil
}
