package httpadapter

import (
	"context"
	"log/slog"
	"sort"

	"electora/contexts/election-core/voting-engine/application/commands"
	"electora/contexts/election-core/voting-engine/application/queries"
	"electora/contexts/election-core/voting-engine/domain/entities"
	httptransport "electora/contexts/election-core/voting-engine/transport/http"
)

type Handler struct {
	Cast       commands.CastVoteUseCase
	Simulation commands.SimulateUseCase
	Results    queries.ResultsUseCase
	Logger     *slog.Logger
}

func (h Handler) CastVoteHandler(
	ctx context.Context,
	voterID string,
	req httptransport.CastVoteRequest,
) (httptransport.VoteResponse, error) {
	vote, err := h.Cast.CastVote(ctx, commands.CastVoteCommand{
		VoterID:     voterID,
		CandidateID: req.CandidateID,
	})
	if err != nil {
		return httptransport.VoteResponse{}, err
	}
	return httptransport.VoteResponse{
		VoteID:      vote.VoteID,
		VoterID:     vote.VoterID,
		CandidateID: vote.CandidateID,
		PositionID:  vote.PositionID,
		CycleID:     vote.CycleID,
	}, nil
}

func (h Handler) ResultsHandler(ctx context.Context, cycleID string) (httptransport.TallyResponse, error) {
	rows, err := h.Results.Tally(ctx, cycleID)
	if err != nil {
		return httptransport.TallyResponse{}, err
	}
	return httptransport.TallyResponse{
		CycleID: cycleID,
		Items:   mapTally(rows),
	}, nil
}

// LiveScoresHandler serves the same derived tally as ResultsHandler; the
// route differs only in access policy (live scores are public).
func (h Handler) LiveScoresHandler(ctx context.Context, cycleID string) (httptransport.TallyResponse, error) {
	return h.ResultsHandler(ctx, cycleID)
}

func (h Handler) WinnersHandler(ctx context.Context, cycleID string) (httptransport.WinnersResponse, error) {
	results, err := h.Results.Winners(ctx, cycleID)
	if err != nil {
		return httptransport.WinnersResponse{}, err
	}
	items := make([]httptransport.PositionWinner, 0, len(results))
	for _, result := range results {
		item := httptransport.PositionWinner{
			PositionID: result.PositionID,
			Position:   result.PositionName,
			TotalVotes: result.TotalVotes,
			NoWinner:   result.Winner == nil,
		}
		if result.Winner != nil {
			item.Winner = &httptransport.WinnerItem{
				CandidateID: result.Winner.CandidateID,
				Name:        result.Winner.Name,
				Votes:       result.Winner.Votes,
			}
		}
		items = append(items, item)
	}
	return httptransport.WinnersResponse{
		CycleID: cycleID,
		Items:   items,
	}, nil
}

func (h Handler) EligibilityHandler(
	ctx context.Context,
	voterID string,
	cycleID string,
) (httptransport.EligibilityResponse, error) {
	completed, err := h.Results.HasVoterCompletedCycle(ctx, voterID, cycleID)
	if err != nil {
		return httptransport.EligibilityResponse{}, err
	}
	return httptransport.EligibilityResponse{
		CycleID:   cycleID,
		VoterID:   voterID,
		Completed: completed,
	}, nil
}

func (h Handler) SimulateHandler(ctx context.Context, req httptransport.SimulateRequest) (httptransport.SimulateResponse, error) {
	targets := make(map[string]int, len(req.CandidateTargets))
	for _, target := range req.CandidateTargets {
		targets[target.CandidateID] = target.TargetVotes
	}
	report, err := h.Simulation.Simulate(ctx, commands.SimulateCommand{
		CycleID: req.CycleID,
		Targets: targets,
	})
	if err != nil {
		return httptransport.SimulateResponse{}, err
	}
	resp := httptransport.SimulateResponse{
		VotesCreated:   report.VotesCreated,
		VotesRepointed: report.VotesRepointed,
		VotersSpent:    report.VotersSpent,
	}
	for candidateID, remaining := range report.Unmet {
		resp.Unmet = append(resp.Unmet, httptransport.CandidateTarget{
			CandidateID: candidateID,
			TargetVotes: remaining,
		})
	}
	sort.Slice(resp.Unmet, func(i, j int) bool {
		return resp.Unmet[i].CandidateID < resp.Unmet[j].CandidateID
	})
	return resp, nil
}

func mapTally(rows []entities.TallyRow) []httptransport.TallyItem {
	items := make([]httptransport.TallyItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, httptransport.TallyItem{
			PositionID:    row.PositionID,
			PositionName:  row.PositionName,
			CandidateID:   row.CandidateID,
			CandidateName: row.CandidateName,
			Photo:         row.Photo,
			VoteCount:     row.Votes,
		})
	}
	return items
}
