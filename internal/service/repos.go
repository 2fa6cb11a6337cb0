package service

import (
	"github.com/alexanderramin/relplan/internal/db"
	"github.com/alexanderramin/relplan/internal/repository"
)

// Repos bundles the repositories a service reads a plan through.
type Repos struct {
	Releases  repository.ReleaseRepo
	Features  repository.FeatureRepo
	Sprints   repository.SprintRepo
	WorkItems repository.WorkItemRepo
	Team      repository.TeamRepo
	Holidays  repository.HolidayRepo
}

// NewSQLiteRepos binds every SQLite repository to conn, which may be the
// database or a transaction.
func NewSQLiteRepos(conn db.DBTX) Repos {
	return Repos{
		Releases:  repository.NewSQLiteReleaseRepo(conn),
		Features:  repository.NewSQLiteFeatureRepo(conn),
		Sprints:   repository.NewSQLiteSprintRepo(conn),
		WorkItems: repository.NewSQLiteWorkItemRepo(conn),
		Team:      repository.NewSQLiteTeamRepo(conn),
		Holidays:  repository.NewSQLiteHolidayRepo(conn),
	}
}
