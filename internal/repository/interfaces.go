package repository

import (
	"context"

	"github.com/alexanderramin/relplan/internal/domain"
)

// ReleaseRepo stores release headers. Features, sprints and work items are
// loaded through their own repos.
type ReleaseRepo interface {
	Create(ctx context.Context, r *domain.Release) error
	GetByID(ctx context.Context, id string) (*domain.Release, error)
	GetByName(ctx context.Context, name string) (*domain.Release, error)
	// FindByIDPrefix returns every release whose id starts with prefix.
	FindByIDPrefix(ctx context.Context, prefix string) ([]*domain.Release, error)
	List(ctx context.Context) ([]*domain.Release, error)
	Update(ctx context.Context, r *domain.Release) error
	Delete(ctx context.Context, id string) error
}

type FeatureRepo interface {
	Create(ctx context.Context, f *domain.Feature) error
	GetByID(ctx context.Context, id string) (*domain.Feature, error)
	ListByRelease(ctx context.Context, releaseID string) ([]domain.Feature, error)
}

type SprintRepo interface {
	Create(ctx context.Context, s *domain.Sprint, orderIndex int) error
	ListByRelease(ctx context.Context, releaseID string) ([]domain.Sprint, error)
}

type WorkItemRepo interface {
	Create(ctx context.Context, w *domain.WorkItem, orderIndex int) error
	GetByID(ctx context.Context, id string) (*domain.WorkItem, error)
	// ListByRelease returns the release's items in feature order, then item order.
	ListByRelease(ctx context.Context, releaseID string) ([]domain.WorkItem, error)
	Update(ctx context.Context, w *domain.WorkItem) error
	Delete(ctx context.Context, id string) error
}

type TeamRepo interface {
	// Upsert inserts the member or replaces its profile; PTO is untouched.
	Upsert(ctx context.Context, m *domain.TeamMember) error
	GetByID(ctx context.Context, id string) (*domain.TeamMember, error)
	// List returns every member with PTO attached, ordered by name.
	List(ctx context.Context) ([]domain.TeamMember, error)
	AddPTO(ctx context.Context, p *domain.PTOEntry) error
	ListPTO(ctx context.Context, memberID string) ([]domain.PTOEntry, error)
	DeletePTO(ctx context.Context, id string) error
}

type HolidayRepo interface {
	Upsert(ctx context.Context, h *domain.Holiday) error
	List(ctx context.Context) ([]domain.Holiday, error)
	Delete(ctx context.Context, id string) error
}
