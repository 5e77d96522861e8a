package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"electora/contexts/election-core/cycle-registry/application"
	"electora/contexts/election-core/cycle-registry/domain/entities"
	domainerrors "electora/contexts/election-core/cycle-registry/domain/errors"
	httptransport "electora/contexts/election-core/cycle-registry/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateCycleHandler(ctx context.Context, req httptransport.CreateCycleRequest) (httptransport.CycleResponse, error) {
	input, err := cycleInputFromRequest(req.Year, req.StartDate, req.EndDate)
	if err != nil {
		return httptransport.CycleResponse{}, err
	}
	cycle, err := h.Service.CreateCycle(ctx, input)
	if err != nil {
		return httptransport.CycleResponse{}, err
	}
	return toCycleResponse(cycle), nil
}

func (h Handler) GetCycleHandler(ctx context.Context, cycleID string) (httptransport.CycleResponse, error) {
	cycle, err := h.Service.GetCycle(ctx, cycleID)
	if err != nil {
		return httptransport.CycleResponse{}, err
	}
	return toCycleResponse(cycle), nil
}

func (h Handler) GetActiveCycleHandler(ctx context.Context) (httptransport.CycleResponse, error) {
	cycle, err := h.Service.GetActiveCycle(ctx)
	if err != nil {
		return httptransport.CycleResponse{}, err
	}
	return toCycleResponse(cycle), nil
}

func (h Handler) ListCyclesHandler(ctx context.Context) (httptransport.CycleListResponse, error) {
	cycles, err := h.Service.ListCycles(ctx)
	if err != nil {
		return httptransport.CycleListResponse{}, err
	}
	items := make([]httptransport.CycleResponse, 0, len(cycles))
	for _, cycle := range cycles {
		items = append(items, toCycleResponse(cycle))
	}
	return httptransport.CycleListResponse{Items: items}, nil
}

func (h Handler) UpdateCycleHandler(ctx context.Context, cycleID string, req httptransport.UpdateCycleRequest) (httptransport.CycleResponse, error) {
	input, err := cycleInputFromRequest(req.Year, req.StartDate, req.EndDate)
	if err != nil {
		return httptransport.CycleResponse{}, err
	}
	cycle, err := h.Service.UpdateCycle(ctx, cycleID, input)
	if err != nil {
		return httptransport.CycleResponse{}, err
	}
	return toCycleResponse(cycle), nil
}

func (h Handler) ActivateCycleHandler(ctx context.Context, cycleID string) (httptransport.CycleResponse, error) {
	cycle, err := h.Service.ActivateCycle(ctx, cycleID)
	if err != nil {
		return httptransport.CycleResponse{}, err
	}
	return toCycleResponse(cycle), nil
}

func (h Handler) DeleteCycleHandler(ctx context.Context, cycleID string) error {
	return h.Service.DeleteCycle(ctx, cycleID)
}

func cycleInputFromRequest(year int, startDate string, endDate string) (application.CycleInput, error) {
	start, err := parseCycleDate(startDate)
	if err != nil {
		return application.CycleInput{}, err
	}
	end, err := parseCycleDate(endDate)
	if err != nil {
		return application.CycleInput{}, err
	}
	return application.CycleInput{
		Year:      year,
		StartDate: start,
		EndDate:   end,
	}, nil
}

// parseCycleDate accepts RFC 3339 timestamps or bare dates.
func parseCycleDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, domainerrors.ErrInvalidCycleInput
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, domainerrors.ErrInvalidCycleInput
	}
	return parsed, nil
}

func toCycleResponse(cycle entities.VotingCycle) httptransport.CycleResponse {
	return httptransport.CycleResponse{
		CycleID:   cycle.CycleID,
		Year:      cycle.Year,
		StartDate: cycle.StartDate.UTC().Format(time.RFC3339),
		EndDate:   cycle.EndDate.UTC().Format(time.RFC3339),
		IsActive:  cycle.IsActive,
		CreatedAt: cycle.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: cycle.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
