package queries

import (
	"context"
	"sort"

	"rotafila/internal/core/domain/model/kernel"
	"rotafila/internal/core/ports"
)

// GetShiftReportQueryHandler aggregates delivery events into the per-courier
// shift report.
type GetShiftReportQueryHandler struct {
	couriers ports.CourierRepository
	events   ports.EventRepository
}

// NewGetShiftReportQueryHandler creates a handler for shift reports.
func NewGetShiftReportQueryHandler(
	couriers ports.CourierRepository,
	events ports.EventRepository,
) GetShiftReportQueryHandler {
	return GetShiftReportQueryHandler{couriers: couriers, events: events}
}

// Handle executes the report query. Busiest couriers come first; an open
// delivery counts but adds no duration. Events of couriers no longer on the
// roster are left out.
func (h GetShiftReportQueryHandler) Handle(
	ctx context.Context,
	query GetShiftReportQuery,
) ([]GetShiftReportQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	events, err := h.events.GetForPeriod(ctx, query.Unit(), query.From(), query.To())
	if err != nil {
		return nil, err
	}

	roster, err := h.couriers.GetAllInUnit(ctx, query.Unit())
	if err != nil {
		return nil, err
	}

	names := make(map[kernel.UUID]string, len(roster))
	for _, c := range roster {
		names[c.ID()] = c.Name()
	}

	totals := make(map[kernel.UUID]*GetShiftReportQueryResponse)
	for _, event := range events {
		name, ok := names[event.CourierID()]
		if !ok {
			continue
		}

		line, ok := totals[event.CourierID()]
		if !ok {
			line = &GetShiftReportQueryResponse{CourierID: event.CourierID(), Name: name}
			totals[event.CourierID()] = line
		}

		line.Deliveries++
		if returned := event.ReturnedAt(); returned != nil {
			line.TotalOnRoadSecs += int64(returned.Sub(event.CalledAt()).Seconds())
		}
	}

	report := make([]GetShiftReportQueryResponse, 0, len(totals))
	for _, line := range totals {
		report = append(report, *line)
	}

	sort.Slice(report, func(i, j int) bool {
		if report[i].Deliveries != report[j].Deliveries {
			return report[i].Deliveries > report[j].Deliveries
		}
		return report[i].Name < report[j].Name
	})

	return report, nil
}
