package queries

import (
	"context"
	"sort"
	"strings"

	"electora/contexts/election-core/voting-engine/domain/entities"
	domainerrors "electora/contexts/election-core/voting-engine/domain/errors"
	"electora/contexts/election-core/voting-engine/ports"
)

// ResultsUseCase serves tally, winner, and eligibility reads. All reads derive
// from the ledger; nothing is cached on catalog entities.
type ResultsUseCase struct {
	Votes   ports.VoteRepository
	Catalog ports.BallotCatalog
	Cycles  ports.CycleRegistry
}

// Tally groups the cycle's votes by (position, candidate) and joins catalog
// names. It is safe to call while voting is live; counts sum to the total
// ledger rows for the cycle.
func (uc ResultsUseCase) Tally(ctx context.Context, cycleID string) ([]entities.TallyRow, error) {
	cycleID = strings.TrimSpace(cycleID)
	if _, err := uc.Cycles.GetCycle(ctx, cycleID); err != nil {
		return nil, err
	}
	votes, err := uc.Votes.ListVotesByCycle(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	candidates, err := uc.Catalog.ListCandidatesByCycle(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	positions, err := uc.Catalog.ListPositionsByCycle(ctx, cycleID)
	if err != nil {
		return nil, err
	}

	positionNames := make(map[string]string, len(positions))
	for _, position := range positions {
		positionNames[position.PositionID] = position.Name
	}
	candidateRefs := make(map[string]ports.CandidateRef, len(candidates))
	for _, candidate := range candidates {
		candidateRefs[candidate.CandidateID] = candidate
	}

	counts := map[string]int{}
	for _, vote := range votes {
		counts[vote.CandidateID]++
	}

	rows := make([]entities.TallyRow, 0, len(candidates))
	for _, candidate := range candidates {
		rows = append(rows, entities.TallyRow{
			PositionID:    candidate.PositionID,
			PositionName:  positionNames[candidate.PositionID],
			CandidateID:   candidate.CandidateID,
			CandidateName: candidate.Name,
			Photo:         candidate.Photo,
			Votes:         counts[candidate.CandidateID],
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].PositionID == rows[j].PositionID {
			if rows[i].Votes == rows[j].Votes {
				return rows[i].CandidateID < rows[j].CandidateID
			}
			return rows[i].Votes > rows[j].Votes
		}
		return rows[i].PositionID < rows[j].PositionID
	})
	return rows, nil
}

// Winners selects the max-count candidate per position from a single ledger
// snapshot. Ties break deterministically: vote count descending, then
// candidate ID ascending. Positions with zero cast votes report no winner.
func (uc ResultsUseCase) Winners(ctx context.Context, cycleID string) ([]entities.PositionResult, error) {
	cycleID = strings.TrimSpace(cycleID)
	if _, err := uc.Cycles.GetCycle(ctx, cycleID); err != nil {
		return nil, err
	}
	positions, err := uc.Catalog.ListPositionsByCycle(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	candidates, err := uc.Catalog.ListCandidatesByCycle(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	votes, err := uc.Votes.ListVotesByCycle(ctx, cycleID)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for _, vote := range votes {
		counts[vote.CandidateID]++
	}
	byPosition := map[string][]ports.CandidateRef{}
	for _, candidate := range candidates {
		byPosition[candidate.PositionID] = append(byPosition[candidate.PositionID], candidate)
	}

	results := make([]entities.PositionResult, 0, len(positions))
	for _, position := range positions {
		result := entities.PositionResult{
			PositionID:   position.PositionID,
			PositionName: position.Name,
		}
		ranked := append([]ports.CandidateRef(nil), byPosition[position.PositionID]...)
		sort.Slice(ranked, func(i, j int) bool {
			if counts[ranked[i].CandidateID] == counts[ranked[j].CandidateID] {
				return ranked[i].CandidateID < ranked[j].CandidateID
			}
			return counts[ranked[i].CandidateID] > counts[ranked[j].CandidateID]
		})
		for _, candidate := range ranked {
			result.TotalVotes += counts[candidate.CandidateID]
		}
		if len(ranked) > 0 && result.TotalVotes > 0 {
			top := ranked[0]
			result.Winner = &entities.Winner{
				CandidateID: top.CandidateID,
				Name:        top.Name,
				Votes:       counts[top.CandidateID],
			}
		}
		results = append(results, result)
	}
	return results, nil
}

// HasVoterCompletedCycle reports whether the voter has voted in every
// position of the cycle. It reads the same ledger CastVote writes, so the
// pre-flight answer and the engine's decision cannot diverge.
func (uc ResultsUseCase) HasVoterCompletedCycle(ctx context.Context, voterID string, cycleID string) (bool, error) {
	voterID = strings.TrimSpace(voterID)
	cycleID = strings.TrimSpace(cycleID)
	if voterID == "" || cycleID == "" {
		return false, domainerrors.ErrInvalidVoteInput
	}
	if _, err := uc.Cycles.GetCycle(ctx, cycleID); err != nil {
		return false, err
	}
	positions, err := uc.Catalog.ListPositionsByCycle(ctx, cycleID)
	if err != nil {
		return false, err
	}
	votes, err := uc.Votes.ListVotesByVoter(ctx, voterID, cycleID)
	if err != nil {
		return false, err
	}
	voted := map[string]bool{}
	for _, vote := range votes {
		voted[vote.PositionID] = true
	}
	return len(voted) >= len(positions), nil
}
