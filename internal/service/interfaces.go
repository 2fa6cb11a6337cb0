package service

import "github.com/alexanderramin/relplan/internal/app"

type ImportService = app.ImportPlanUseCase

type ReleaseService = app.ReleaseUseCase

type AnalysisService = app.AnalysisUseCase

type TicketService = app.TicketUseCase

type TeamService = app.TeamUseCase

type HolidayService = app.HolidayUseCase
