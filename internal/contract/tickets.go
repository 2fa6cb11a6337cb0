package contract

import "github.com/alexanderramin/relplan/internal/app"

type TicketListRequest = app.TicketListRequest

type TicketView = app.TicketView

type TicketListResponse = app.TicketListResponse

type TicketMoveRequest = app.TicketMoveRequest

type TicketAssignRequest = app.TicketAssignRequest

type TicketChangeResponse = app.TicketChangeResponse

type MemberView = app.MemberView

type PTOAddRequest = app.PTOAddRequest

type PTOView = app.PTOView

type HolidayAddRequest = app.HolidayAddRequest

type HolidayView = app.HolidayView
