package contract

import "github.com/alexanderramin/relplan/internal/app"

type AnalysisRequest = app.AnalysisRequest

func NewAnalysisRequest(releaseRef string) AnalysisRequest {
	return app.NewAnalysisRequest(releaseRef)
}

type ConflictPartner = app.ConflictPartner

type ConflictView = app.ConflictView

type ConflictSummaryView = app.ConflictSummaryView

type ConflictsResponse = app.ConflictsResponse

type SprintCapacityView = app.SprintCapacityView

type UnscheduledItem = app.UnscheduledItem

type CapacityResponse = app.CapacityResponse

type DependencyViolationView = app.DependencyViolationView

type RoleMismatchView = app.RoleMismatchView

type ConfidenceView = app.ConfidenceView

type HealthResponse = app.HealthResponse
