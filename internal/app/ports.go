package app

import (
	"context"

	"github.com/alexanderramin/relplan/internal/domain"
	"github.com/alexanderramin/relplan/internal/importer"
)

type ImportOptions struct {
	// Replace deletes a stored release with the same name before importing.
	Replace bool
}

type ImportResult struct {
	Release       *domain.Release
	FeatureCount  int
	SprintCount   int
	WorkItemCount int
	MemberCount   int
	PTOCount      int
	HolidayCount  int
	Warnings      []string
}

type ImportPlanUseCase interface {
	ImportPlan(ctx context.Context, filePath string, opts ImportOptions) (*ImportResult, error)
	ImportPlanFromSchema(ctx context.Context, schema *importer.PlanSchema, opts ImportOptions) (*ImportResult, error)
}

type ReleaseUseCase interface {
	List(ctx context.Context) ([]ReleaseSummary, error)
	Get(ctx context.Context, ref string) (*domain.Release, error)
	Delete(ctx context.Context, ref string) error
}

type AnalysisUseCase interface {
	Conflicts(ctx context.Context, req AnalysisRequest) (*ConflictsResponse, error)
	Capacity(ctx context.Context, req AnalysisRequest) (*CapacityResponse, error)
	Health(ctx context.Context, req AnalysisRequest) (*HealthResponse, error)
}

type TicketUseCase interface {
	List(ctx context.Context, req TicketListRequest) (*TicketListResponse, error)
	Move(ctx context.Context, req TicketMoveRequest) (*TicketChangeResponse, error)
	Assign(ctx context.Context, req TicketAssignRequest) (*TicketChangeResponse, error)
}

type TeamUseCase interface {
	ListMembers(ctx context.Context) ([]MemberView, error)
	AddPTO(ctx context.Context, req PTOAddRequest) (*PTOView, error)
	ListPTO(ctx context.Context, member string) ([]PTOView, error)
	RemovePTO(ctx context.Context, id string) error
}

type HolidayUseCase interface {
	Add(ctx context.Context, req HolidayAddRequest) (*HolidayView, error)
	List(ctx context.Context) ([]HolidayView, error)
	Remove(ctx context.Context, id string) error
}
