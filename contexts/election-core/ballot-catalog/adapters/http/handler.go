package httpadapter

import (
	"context"
	"log/slog"

	"electora/contexts/election-core/ballot-catalog/application"
	"electora/contexts/election-core/ballot-catalog/domain/entities"
	httptransport "electora/contexts/election-core/ballot-catalog/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreatePositionHandler(ctx context.Context, req httptransport.CreatePositionRequest) (httptransport.PositionResponse, error) {
	position, err := h.Service.CreatePosition(ctx, application.CreatePositionInput{
		CycleID:     req.CycleID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return httptransport.PositionResponse{}, err
	}
	return toPositionResponse(position), nil
}

func (h Handler) GetPositionHandler(ctx context.Context, positionID string) (httptransport.PositionResponse, error) {
	position, err := h.Service.GetPosition(ctx, positionID)
	if err != nil {
		return httptransport.PositionResponse{}, err
	}
	return toPositionResponse(position), nil
}

func (h Handler) ListPositionsHandler(ctx context.Context, cycleID string) (httptransport.PositionListResponse, error) {
	positions, err := h.Service.ListPositions(ctx, cycleID)
	if err != nil {
		return httptransport.PositionListResponse{}, err
	}
	items := make([]httptransport.PositionResponse, 0, len(positions))
	for _, position := range positions {
		items = append(items, toPositionResponse(position))
	}
	return httptransport.PositionListResponse{Items: items}, nil
}

func (h Handler) UpdatePositionHandler(ctx context.Context, positionID string, req httptransport.UpdatePositionRequest) (httptransport.PositionResponse, error) {
	position, err := h.Service.UpdatePosition(ctx, positionID, req.Name, req.Description)
	if err != nil {
		return httptransport.PositionResponse{}, err
	}
	return toPositionResponse(position), nil
}

func (h Handler) DeletePositionHandler(ctx context.Context, positionID string) error {
	return h.Service.DeletePosition(ctx, positionID)
}

func (h Handler) CreateCandidateHandler(ctx context.Context, req httptransport.CandidateRequest) (httptransport.CandidateResponse, error) {
	candidate, err := h.Service.CreateCandidate(ctx, candidateInputFromRequest(req))
	if err != nil {
		return httptransport.CandidateResponse{}, err
	}
	return toCandidateResponse(candidate), nil
}

func (h Handler) GetCandidateHandler(ctx context.Context, candidateID string) (httptransport.CandidateResponse, error) {
	candidate, err := h.Service.GetCandidate(ctx, candidateID)
	if err != nil {
		return httptransport.CandidateResponse{}, err
	}
	return toCandidateResponse(candidate), nil
}

func (h Handler) ListCandidatesByCycleHandler(ctx context.Context, cycleID string) (httptransport.CandidateListResponse, error) {
	candidates, err := h.Service.ListCandidatesByCycle(ctx, cycleID)
	if err != nil {
		return httptransport.CandidateListResponse{}, err
	}
	return toCandidateListResponse(candidates), nil
}

func (h Handler) ListCandidatesByPositionHandler(ctx context.Context, positionID string) (httptransport.CandidateListResponse, error) {
	candidates, err := h.Service.ListCandidatesByPosition(ctx, positionID)
	if err != nil {
		return httptransport.CandidateListResponse{}, err
	}
	return toCandidateListResponse(candidates), nil
}

func (h Handler) UpdateCandidateHandler(ctx context.Context, candidateID string, req httptransport.CandidateRequest) (httptransport.CandidateResponse, error) {
	candidate, err := h.Service.UpdateCandidate(ctx, candidateID, candidateInputFromRequest(req))
	if err != nil {
		return httptransport.CandidateResponse{}, err
	}
	return toCandidateResponse(candidate), nil
}

func (h Handler) DeleteCandidateHandler(ctx context.Context, candidateID string) error {
	return h.Service.DeleteCandidate(ctx, candidateID)
}

func candidateInputFromRequest(req httptransport.CandidateRequest) application.CreateCandidateInput {
	return application.CreateCandidateInput{
		PositionID: req.PositionID,
		CycleID:    req.CycleID,
		Title:      req.Title,
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
		LastName:   req.LastName,
		Photo:      req.Photo,
		Manifesto:  req.Manifesto,
	}
}

func toPositionResponse(position entities.Position) httptransport.PositionResponse {
	return httptransport.PositionResponse{
		PositionID:  position.PositionID,
		CycleID:     position.CycleID,
		Name:        position.Name,
		Description: position.Description,
	}
}

func toCandidateResponse(candidate entities.Candidate) httptransport.CandidateResponse {
	return httptransport.CandidateResponse{
		CandidateID: candidate.CandidateID,
		PositionID:  candidate.PositionID,
		CycleID:     candidate.CycleID,
		Title:       candidate.Title,
		FirstName:   candidate.FirstName,
		MiddleName:  candidate.MiddleName,
		LastName:    candidate.LastName,
		FullName:    candidate.FullName(),
		Photo:       candidate.Photo,
		Manifesto:   candidate.Manifesto,
	}
}

func toCandidateListResponse(candidates []entities.Candidate) httptransport.CandidateListResponse {
	items := make([]httptransport.CandidateResponse, 0, len(candidates))
	for _, candidate := range candidates {
		items = append(items, toCandidateResponse(candidate))
	}
	return httptransport.CandidateListResponse{Items: items}
}
