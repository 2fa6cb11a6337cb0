package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrStr(s string) *string     { return &s }
func ptrFloat(f float64) *float64 { return &f }

func validMinimalSchema() *PlanSchema {
	return &PlanSchema{
		Release: ReleaseImport{Name: "Q3", StartDate: ptrStr("2026-06-01"), EndDate: ptrStr("2026-06-30")},
		Sprints: []SprintImport{
			{ID: "s1", Name: "Sprint 1", StartDate: "2026-06-01", EndDate: "2026-06-12"},
		},
		Team: []MemberImport{
			{ID: "m-1", Name: "Alice", Role: "backend"},
		},
		Features: []FeatureImport{
			{Name: "Auth", Tickets: []TicketImport{
				{ID: "T-1", Title: "Login", StartDate: "2026-06-01", EndDate: "2026-06-03", AssignedTo: "m-1"},
			}},
		},
	}
}

func errorStrings(errs []error) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "\n")
}

func TestValidatePlanSchema_ValidMinimal(t *testing.T) {
	assert.Empty(t, ValidatePlanSchema(validMinimalSchema()))
}

func TestValidatePlanSchema_Failures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *PlanSchema)
		wantMsg string
	}{
		{"missing release name", func(s *PlanSchema) { s.Release.Name = "" }, "release.name is required"},
		{"bad release date", func(s *PlanSchema) { s.Release.StartDate = ptrStr("06/01/2026") }, "release.start_date: invalid date format"},
		{"inverted release", func(s *PlanSchema) { s.Release.EndDate = ptrStr("2026-05-01") }, "must not be before start_date"},
		{"half window", func(s *PlanSchema) { s.Release.EndDate = nil }, "must be given together"},
		{"sprint missing end", func(s *PlanSchema) { s.Sprints[0].EndDate = "" }, "sprints[0].end_date is required"},
		{"duplicate sprint id", func(s *PlanSchema) { s.Sprints = append(s.Sprints, s.Sprints[0]) }, `sprints[1].id: duplicate id "s1"`},
		{"member without id", func(s *PlanSchema) { s.Team[0].ID = "" }, "team[0].id is required"},
		{"bad experience", func(s *PlanSchema) { s.Team[0].Experience = "guru" }, `team[0].experience: invalid value "guru"`},
		{"zero velocity", func(s *PlanSchema) { s.Team[0].Velocity = ptrFloat(0) }, "velocity_multiplier must be positive"},
		{"inverted pto", func(s *PlanSchema) {
			s.Team[0].PTO = []PTOImport{{StartDate: "2026-06-10", EndDate: "2026-06-09"}}
		}, "team[0].pto[0]: end_date"},
		{"holiday without date", func(s *PlanSchema) { s.Holidays = []HolidayImport{{Name: "X"}} }, "holidays[0].start_date is required"},
		{"ticket without title", func(s *PlanSchema) { s.Features[0].Tickets[0].Title = "" }, "features[0].tickets[0].title is required"},
		{"bad status", func(s *PlanSchema) { s.Features[0].Tickets[0].Status = "blocked" }, `status: invalid value "blocked"`},
		{"negative effort", func(s *PlanSchema) { s.Features[0].Tickets[0].EffortDays = ptrFloat(-1) }, "effort_days must not be negative"},
		{"self dependency", func(s *PlanSchema) { s.Features[0].Tickets[0].DependsOn = []string{"T-1"} }, "self-dependency"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := validMinimalSchema()
			tc.mutate(s)
			errs := ValidatePlanSchema(s)
			require.NotEmpty(t, errs)
			assert.Contains(t, errorStrings(errs), tc.wantMsg)
		})
	}
}

func TestValidatePlanSchema_ReportsEveryError(t *testing.T) {
	s := validMinimalSchema()
	s.Release.Name = ""
	s.Sprints[0].Name = ""
	s.Features[0].Tickets[0].StartDate = "soon"

	assert.Len(t, ValidatePlanSchema(s), 3)
}

func TestValidatePlanSchema_SingleDayHolidayShorthand(t *testing.T) {
	s := validMinimalSchema()
	s.Holidays = []HolidayImport{{Name: "Founders day", Date: "2026-06-05"}}
	assert.Empty(t, ValidatePlanSchema(s))
}

func TestValidatePlanSchema_DependencyCycle(t *testing.T) {
	s := validMinimalSchema()
	s.Features[0].Tickets = []TicketImport{
		{ID: "A", Title: "A", StartDate: "2026-06-01", EndDate: "2026-06-01", DependsOn: []string{"B"}},
		{ID: "B", Title: "B", StartDate: "2026-06-02", EndDate: "2026-06-02", DependsOn: []string{"C"}},
		{ID: "C", Title: "C", StartDate: "2026-06-03", EndDate: "2026-06-03", DependsOn: []string{"A"}},
	}
	errs := ValidatePlanSchema(s)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "circular dependency")
}

func TestValidatePlanSchema_UnknownDependencyIsNotAnError(t *testing.T) {
	s := validMinimalSchema()
	s.Features[0].Tickets[0].DependsOn = []string{"EXT-9"}
	assert.Empty(t, ValidatePlanSchema(s))
}

func TestParsePlanSchema_RejectsUnknownFields(t *testing.T) {
	_, err := ParsePlanSchema([]byte(`{"release": {"name": "Q3", "owner": "x"}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "owner")
}
