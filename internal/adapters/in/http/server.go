// Package http exposes the rotation over HTTP. It coordinates between echo
// handlers and the application use cases, and upgrades the per-unit
// announcement feed to WebSocket.
package http

import (
	"errors"
	"net/http"
	"time"

	"rotafila/internal/adapters/out/announce"
	"rotafila/internal/core/application/usecases/commands"
	"rotafila/internal/core/application/usecases/queries"
	"rotafila/internal/core/domain/model/courier"
	"rotafila/internal/core/domain/model/kernel"
	"rotafila/internal/core/domain/services"
	"rotafila/internal/pkg/errs"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Server wires the HTTP surface to the command and query handlers.
type Server struct {
	// Command handlers
	callNextHandler         commands.CallNextCommandHandler
	confirmDepartureHandler commands.ConfirmDepartureCommandHandler
	markReturnedHandler     commands.MarkReturnedCommandHandler
	checkInHandler          commands.CheckInCommandHandler
	skipTurnHandler         commands.SkipTurnCommandHandler
	reorderQueueHandler     commands.ReorderQueueCommandHandler
	registerCourierHandler  commands.RegisterCourierCommandHandler
	updateProfileHandler    commands.UpdateCourierProfileCommandHandler
	removeCourierHandler    commands.RemoveCourierCommandHandler
	setActiveHandler        commands.SetCourierActiveCommandHandler
	purgeHistoryHandler     commands.PurgeHistoryCommandHandler

	// Query handlers
	getUnitQueueHandler   queries.GetUnitQueueQueryHandler
	getMyPlaceHandler     queries.GetMyPlaceQueryHandler
	getShiftReportHandler queries.GetShiftReportQueryHandler

	hub      *announce.Hub
	settings commands.RotationSettings
}

// NewServer creates an HTTP server with the required handlers.
func NewServer(
	callNextHandler commands.CallNextCommandHandler,
	confirmDepartureHandler commands.ConfirmDepartureCommandHandler,
	markReturnedHandler commands.MarkReturnedCommandHandler,
	checkInHandler commands.CheckInCommandHandler,
	skipTurnHandler commands.SkipTurnCommandHandler,
	reorderQueueHandler commands.ReorderQueueCommandHandler,
	registerCourierHandler commands.RegisterCourierCommandHandler,
	updateProfileHandler commands.UpdateCourierProfileCommandHandler,
	removeCourierHandler commands.RemoveCourierCommandHandler,
	setActiveHandler commands.SetCourierActiveCommandHandler,
	purgeHistoryHandler commands.PurgeHistoryCommandHandler,
	getUnitQueueHandler queries.GetUnitQueueQueryHandler,
	getMyPlaceHandler queries.GetMyPlaceQueryHandler,
	getShiftReportHandler queries.GetShiftReportQueryHandler,
	hub *announce.Hub,
	settings commands.RotationSettings,
) *Server {
	return &Server{
		callNextHandler:         callNextHandler,
		confirmDepartureHandler: confirmDepartureHandler,
		markReturnedHandler:     markReturnedHandler,
		checkInHandler:          checkInHandler,
		skipTurnHandler:         skipTurnHandler,
		reorderQueueHandler:     reorderQueueHandler,
		registerCourierHandler:  registerCourierHandler,
		updateProfileHandler:    updateProfileHandler,
		removeCourierHandler:    removeCourierHandler,
		setActiveHandler:        setActiveHandler,
		purgeHistoryHandler:     purgeHistoryHandler,
		getUnitQueueHandler:     getUnitQueueHandler,
		getMyPlaceHandler:       getMyPlaceHandler,
		getShiftReportHandler:   getShiftReportHandler,
		hub:                     hub,
		settings:                settings,
	}
}

// RegisterRoutes attaches every route to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/units/:unit/queue/call", s.CallNext)
	api.GET("/units/:unit/queue", s.GetUnitQueue)
	api.PUT("/units/:unit/queue/order", s.ReorderQueue)
	api.GET("/units/:unit/my-place", s.GetMyPlace)
	api.GET("/units/:unit/report", s.GetShiftReport)
	api.DELETE("/units/:unit/history", s.PurgeHistory)

	api.POST("/couriers", s.RegisterCourier)
	api.POST("/couriers/check-in", s.CheckIn)
	api.PATCH("/couriers/:id", s.UpdateCourierProfile)
	api.DELETE("/couriers/:id", s.RemoveCourier)
	api.POST("/couriers/:id/depart", s.ConfirmDeparture)
	api.POST("/couriers/:id/return", s.MarkReturned)
	api.POST("/couriers/:id/skip", s.SkipTurn)
	api.PATCH("/couriers/:id/active", s.SetCourierActive)

	e.GET("/ws/units/:unit", s.AnnouncementFeed)
	e.GET("/health", s.Health)
}

// Error is the JSON body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func errorResponse(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{Code: code, Message: message})
}

// fail maps domain errors onto HTTP status codes.
func fail(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrQueueIsEmpty):
		return errorResponse(ctx, http.StatusConflict, "Nenhum entregador disponível na fila")
	case errors.Is(err, courier.ErrAlreadyCheckedIn):
		return errorResponse(ctx, http.StatusConflict, "Entregador já está na fila")
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorResponse(ctx, http.StatusNotFound, "Not found")
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	default:
		return errorResponse(ctx, http.StatusInternalServerError, "Internal server error")
	}
}

func unitParam(ctx echo.Context) (kernel.Unit, error) {
	return kernel.UnitFromString(ctx.Param("unit"))
}

func idParam(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

// CalledCourier is the response of a call.
type CalledCourier struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// CallNext handles POST /api/v1/units/:unit/queue/call. The delivery count
// only decorates the courier's notification, one courier is called either
// way.
func (s *Server) CallNext(ctx echo.Context) error {
	unit, err := unitParam(ctx)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid unit")
	}

	var body struct {
		Bag        string `json:"bag"`
		Deliveries int    `json:"deliveries"`
	}
	if err = ctx.Bind(&body); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}
	if body.Bag == "" {
		body.Bag = "normal"
	}
	if body.Deliveries == 0 {
		body.Deliveries = 1
	}

	bagType, err := courier.BagTypeFromString(body.Bag)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid bag type")
	}

	command, err := commands.NewCallNextCommand(unit, bagType, body.Deliveries)
	if err != nil {
		return fail(ctx, err)
	}

	next, err := s.callNextHandler.Handle(ctx.Request().Context(), command)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CalledCourier{
		ID:    next.ID().String(),
		Name:  next.Name(),
		Phone: next.Phone().String(),
	})
}

// QueueEntry is one row of the rotation panel.
type QueueEntry struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Status     string     `json:"status"`
	Position   time.Time  `json:"position"`
	DepartedAt *time.Time `json:"departedAt,omitempty"`
}

// GetUnitQueue handles GET /api/v1/units/:unit/queue.
func (s *Server) GetUnitQueue(ctx echo.Context) error {
	unit, err := unitParam(ctx)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid unit")
	}

	query, err := queries.NewGetUnitQueueQuery(unit)
	if err != nil {
		return fail(ctx, err)
	}

	rows, err := s.getUnitQueueHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]QueueEntry, len(rows))
	for i, row := range rows {
		response[i] = QueueEntry{
			ID:         row.CourierID.String(),
			Name:       row.Name,
			Status:     row.Status,
			Position:   row.QueuePosition,
			DepartedAt: row.DepartedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ReorderQueue handles PUT /api/v1/units/:unit/queue/order.
func (s *Server) ReorderQueue(ctx echo.Context) error {
	unit, err := unitParam(ctx)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid unit")
	}

	var body struct {
		CourierIDs []string `json:"courierIds"`
	}
	if err = ctx.Bind(&body); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	orderedIDs := make([]kernel.UUID, 0, len(body.CourierIDs))
	for _, raw := range body.CourierIDs {
		id, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return errorResponse(ctx, http.StatusBadRequest, "Invalid courier id: "+raw)
		}
		orderedIDs = append(orderedIDs, id)
	}

	command, err := commands.NewReorderQueueCommand(unit, orderedIDs)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.reorderQueueHandler.Handle(ctx.Request().Context(), command); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MyPlace is the courier's self-service standing.
type MyPlace struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Unit   string `json:"unit"`
	Status string `json:"status"`
	Place  int    `json:"place"`
}

// GetMyPlace handles GET /api/v1/units/:unit/my-place?phone=.
func (s *Server) GetMyPlace(ctx echo.Context) error {
	if _, err := unitParam(ctx); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid unit")
	}

	phone, err := kernel.NewPhone(ctx.QueryParam("phone"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid phone")
	}

	query, err := queries.NewGetMyPlaceQuery(phone)
	if err != nil {
		return fail(ctx, err)
	}

	place, err := s.getMyPlaceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, MyPlace{
		ID:     place.CourierID.String(),
		Name:   place.Name,
		Unit:   place.Unit.String(),
		Status: place.Status,
		Place:  place.Place,
	})
}

// ReportRow is one courier's line in the shift report.
type ReportRow struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Deliveries      int    `json:"deliveries"`
	TotalOnRoadSecs int64  `json:"totalOnRoadSecs"`
}

// GetShiftReport handles GET /api/v1/units/:unit/report?day=YYYY-MM-DD.
// Without a day it reports the shift that started today.
func (s *Server) GetShiftReport(ctx echo.Context) error {
	unit, err := unitParam(ctx)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid unit")
	}

	day := time.Now()
	if raw := ctx.QueryParam("day"); raw != "" {
		day, err = time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return errorResponse(ctx, http.StatusBadRequest, "Invalid day, expected YYYY-MM-DD")
		}
	}

	query, err := queries.NewGetShiftReportQuery(unit, day, s.settings.DefaultShift)
	if err != nil {
		return fail(ctx, err)
	}

	rows, err := s.getShiftReportHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]ReportRow, len(rows))
	for i, row := range rows {
		response[i] = ReportRow{
			ID:              row.CourierID.String(),
			Name:            row.Name,
			Deliveries:      row.Deliveries,
			TotalOnRoadSecs: row.TotalOnRoadSecs,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// PurgeHistory handles DELETE /api/v1/units/:unit/history. The purge is
// refused before midday; an early request is accepted and does nothing.
func (s *Server) PurgeHistory(ctx echo.Context) error {
	if _, err := unitParam(ctx); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid unit")
	}

	command := commands.NewPurgeHistoryCommand()
	if err := s.purgeHistoryHandler.Handle(ctx.Request().Context(), command); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RegisterCourier handles POST /api/v1/couriers.
func (s *Server) RegisterCourier(ctx echo.Context) error {
	var body struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
		Unit  string `json:"unit"`
	}
	if err := ctx.Bind(&body); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	phone, err := kernel.NewPhone(body.Phone)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid phone")
	}

	unit, err := kernel.UnitFromString(body.Unit)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid unit")
	}

	command, err := commands.NewRegisterCourierCommand(body.Name, phone, unit)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.registerCourierHandler.Handle(ctx.Request().Context(), command); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": command.CourierID().String()})
}

// CheckIn handles POST /api/v1/couriers/check-in. The courier identifies by
// phone and rejoins the tail of the line.
func (s *Server) CheckIn(ctx echo.Context) error {
	var body struct {
		Phone string `json:"phone"`
	}
	if err := ctx.Bind(&body); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	phone, err := kernel.NewPhone(body.Phone)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid phone")
	}

	command, err := commands.NewCheckInCommand(phone)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.checkInHandler.Handle(ctx.Request().Context(), command); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateCourierProfile handles PATCH /api/v1/couriers/:id.
func (s *Server) UpdateCourierProfile(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid courier id")
	}

	var body struct {
		Name            *string `json:"name"`
		Phone           *string `json:"phone"`
		Workdays        *string `json:"workdays"`
		Shift           *string `json:"shift"`
		UseDefaultShift bool    `json:"useDefaultShift"`
	}
	if err = ctx.Bind(&body); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	patch := commands.CourierProfilePatch{
		Name:            body.Name,
		UseDefaultShift: body.UseDefaultShift,
	}

	if body.Phone != nil {
		phone, phoneErr := kernel.NewPhone(*body.Phone)
		if phoneErr != nil {
			return errorResponse(ctx, http.StatusBadRequest, "Invalid phone")
		}
		patch.Phone = &phone
	}

	if body.Workdays != nil {
		workdays, daysErr := courier.WorkdaysFromMask(*body.Workdays)
		if daysErr != nil {
			return errorResponse(ctx, http.StatusBadRequest, "Invalid workdays mask")
		}
		patch.Workdays = &workdays
	}

	if body.Shift != nil {
		shift, shiftErr := courier.ParseShiftWindow(*body.Shift)
		if shiftErr != nil {
			return errorResponse(ctx, http.StatusBadRequest, "Invalid shift window")
		}
		patch.Shift = &shift
	}

	command, err := commands.NewUpdateCourierProfileCommand(id, patch)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.updateProfileHandler.Handle(ctx.Request().Context(), command); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveCourier handles DELETE /api/v1/couriers/:id.
func (s *Server) RemoveCourier(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid courier id")
	}

	command, err := commands.NewRemoveCourierCommand(id)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.removeCourierHandler.Handle(ctx.Request().Context(), command); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmDeparture handles POST /api/v1/couriers/:id/depart. A courier no
// longer in the Called status makes this a silent no-op.
func (s *Server) ConfirmDeparture(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid courier id")
	}

	command, err := commands.NewConfirmDepartureCommand(id)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.confirmDepartureHandler.Handle(ctx.Request().Context(), command); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkReturned handles POST /api/v1/couriers/:id/return.
func (s *Server) MarkReturned(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid courier id")
	}

	command, err := commands.NewMarkReturnedCommand(id)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.markReturnedHandler.Handle(ctx.Request().Context(), command); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SkipTurn handles POST /api/v1/couriers/:id/skip.
func (s *Server) SkipTurn(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid courier id")
	}

	command, err := commands.NewSkipTurnCommand(id)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.skipTurnHandler.Handle(ctx.Request().Context(), command); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetCourierActive handles PATCH /api/v1/couriers/:id/active.
func (s *Server) SetCourierActive(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid courier id")
	}

	var body struct {
		Active bool `json:"active"`
	}
	if err = ctx.Bind(&body); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	command, err := commands.NewSetCourierActiveCommand(id, body.Active)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.setActiveHandler.Handle(ctx.Request().Context(), command); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AnnouncementFeed handles GET /ws/units/:unit, upgrading the connection and
// registering the screen with the announcement hub.
func (s *Server) AnnouncementFeed(ctx echo.Context) error {
	unit, err := unitParam(ctx)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid unit")
	}

	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		return err
	}

	s.hub.Register(unit, conn)
	return nil
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
