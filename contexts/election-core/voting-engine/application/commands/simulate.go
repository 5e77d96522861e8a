package commands

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	application "electora/contexts/election-core/voting-engine/application"
	"electora/contexts/election-core/voting-engine/domain/entities"
	domainerrors "electora/contexts/election-core/voting-engine/domain/errors"
	"electora/contexts/election-core/voting-engine/ports"
)

// SimulateCommand asks the engine to move per-candidate totals toward targets.
type SimulateCommand struct {
	CycleID string
	Targets map[string]int
}

// SimulateUseCase is the bulk-assignment test/ops tool. It runs two strictly
// separated strategies: spend unused member voters (one full ballot each),
// then repoint existing votes within a position. Both paths go through the
// same ledger ports as CastVote, so the (voter, position, cycle) uniqueness
// guarantee holds for simulated votes too.
type SimulateUseCase struct {
	Votes   ports.VoteRepository
	Catalog ports.BallotCatalog
	Cycles  ports.CycleRegistry
	Voters  ports.VoterDirectory
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Rand    ports.Rand
	Logger  *slog.Logger
}

type simulationState struct {
	counts     map[string]int
	shortfall  map[string]int
	targets    map[string]int
	byPosition map[string][]ports.CandidateRef
	positionOf map[string]string
	positions  []ports.PositionRef
	votes      []entities.Vote
	votedByKey map[entities.BallotKey]bool
}

// Simulate computes current counts, the per-candidate shortfall, and covers
// it: strategy (a) spends unused voters, strategy (b) repoints existing rows.
func (uc SimulateUseCase) Simulate(ctx context.Context, cmd SimulateCommand) (entities.SimulationReport, error) {
	logger := application.ResolveLogger(uc.Logger)
	cycleID := strings.TrimSpace(cmd.CycleID)
	if cycleID == "" || len(cmd.Targets) == 0 {
		return entities.SimulationReport{}, domainerrors.ErrInvalidVoteInput
	}
	if _, err := uc.Cycles.GetCycle(ctx, cycleID); err != nil {
		return entities.SimulationReport{}, err
	}

	state, err := uc.loadState(ctx, cycleID, cmd.Targets)
	if err != nil {
		return entities.SimulationReport{}, err
	}

	report := entities.SimulationReport{Unmet: map[string]int{}}
	if err := uc.spendUnusedVoters(ctx, cycleID, state, &report); err != nil {
		return entities.SimulationReport{}, err
	}
	if err := uc.repointExistingVotes(ctx, state, &report); err != nil {
		return entities.SimulationReport{}, err
	}

	for candidateID, remaining := range state.shortfall {
		if remaining > 0 {
			report.Unmet[candidateID] = remaining
		}
	}
	logger.Info("simulation finished",
		"event", "voting_simulation_finished",
		"module", "election-core/voting-engine",
		"layer", "application",
		"cycle_id", cycleID,
		"votes_created", report.VotesCreated,
		"votes_repointed", report.VotesRepointed,
		"voters_spent", report.VotersSpent,
		"unmet_candidates", len(report.Unmet),
	)
	return report, nil
}

func (uc SimulateUseCase) loadState(
	ctx context.Context,
	cycleID string,
	targets map[string]int,
) (*simulationState, error) {
	candidates, err := uc.Catalog.ListCandidatesByCycle(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	positions, err := uc.Catalog.ListPositionsByCycle(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	votes, err := uc.Votes.ListVotesByCycle(ctx, cycleID)
	if err != nil {
		return nil, err
	}

	state := &simulationState{
		counts:     map[string]int{},
		shortfall:  map[string]int{},
		targets:    map[string]int{},
		byPosition: map[string][]ports.CandidateRef{},
		positionOf: map[string]string{},
		positions:  positions,
		votes:      votes,
		votedByKey: map[entities.BallotKey]bool{},
	}
	for _, candidate := range candidates {
		state.byPosition[candidate.PositionID] = append(state.byPosition[candidate.PositionID], candidate)
		state.positionOf[candidate.CandidateID] = candidate.PositionID
	}
	for _, vote := range votes {
		state.counts[vote.CandidateID]++
		state.votedByKey[vote.BallotKey()] = true
	}
	for candidateID, target := range targets {
		candidateID = strings.TrimSpace(candidateID)
		if _, ok := state.positionOf[candidateID]; !ok {
			return nil, domainerrors.ErrUnknownTargetCandidate
		}
		if target < 0 {
			return nil, domainerrors.ErrInvalidVoteInput
		}
		state.targets[candidateID] = target
		if gap := target - state.counts[candidateID]; gap > 0 {
			state.shortfall[candidateID] = gap
		}
	}
	return state, nil
}

// spendUnusedVoters casts one full ballot (one vote per position) for each
// member with no votes in the cycle, until every shortfall is covered or the
// unused pool runs out.
func (uc SimulateUseCase) spendUnusedVoters(
	ctx context.Context,
	cycleID string,
	state *simulationState,
	report *entities.SimulationReport,
) error {
	members, err := uc.Voters.ListMembers(ctx)
	if err != nil {
		return err
	}
	usedVoters := map[string]bool{}
	for _, vote := range state.votes {
		usedVoters[vote.VoterID] = true
	}

	for _, member := range members {
		if totalShortfall(state.shortfall) == 0 {
			return nil
		}
		if usedVoters[member.VoterID] {
			continue
		}
		for _, position := range state.positions {
			candidates := state.byPosition[position.PositionID]
			if len(candidates) == 0 {
				continue
			}
			chosen := uc.chooseCandidate(position.PositionID, state)
			key := entities.BallotKey{
				VoterID:    member.VoterID,
				PositionID: position.PositionID,
				CycleID:    cycleID,
			}
			if state.votedByKey[key] {
				continue
			}
			voteID, err := uc.IDGen.NewID(ctx)
			if err != nil {
				return err
			}
			now := uc.Clock.Now().UTC()
			vote := entities.Vote{
				VoteID:      voteID,
				VoterID:     member.VoterID,
				CandidateID: chosen,
				PositionID:  position.PositionID,
				CycleID:     cycleID,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := uc.Votes.InsertVote(ctx, vote); err != nil {
				return err
			}
			state.votedByKey[key] = true
			state.votes = append(state.votes, vote)
			state.counts[chosen]++
			if state.shortfall[chosen] > 0 {
				state.shortfall[chosen]--
			}
			report.VotesCreated++
		}
		usedVoters[member.VoterID] = true
		report.VotersSpent++
	}
	return nil
}

// chooseCandidate prefers the candidate with the largest remaining shortfall
// in the position and falls back to a uniform-random pick.
func (uc SimulateUseCase) chooseCandidate(positionID string, state *simulationState) string {
	candidates := state.byPosition[positionID]
	best := ""
	bestGap := 0
	for _, candidate := range candidates {
		gap := state.shortfall[candidate.CandidateID]
		if gap > bestGap || (gap == bestGap && gap > 0 && candidate.CandidateID < best) {
			best = candidate.CandidateID
			bestGap = gap
		}
	}
	if best != "" && bestGap > 0 {
		return best
	}
	return candidates[uc.Rand.Intn(len(candidates))].CandidateID
}

// repointExistingVotes covers remaining shortfalls by re-pointing candidate_id
// on already-cast rows within the same position. Donor candidates are only
// drained down to their own target; untargeted candidates donate freely. Rows
// never change voter or position, so the ballot key stays untouched.
func (uc SimulateUseCase) repointExistingVotes(
	ctx context.Context,
	state *simulationState,
	report *entities.SimulationReport,
) error {
	needy := make([]string, 0, len(state.shortfall))
	for candidateID, gap := range state.shortfall {
		if gap > 0 {
			needy = append(needy, candidateID)
		}
	}
	sort.Strings(needy)

	for _, candidateID := range needy {
		positionID := state.positionOf[candidateID]
		for i := range state.votes {
			if state.shortfall[candidateID] == 0 {
				break
			}
			vote := &state.votes[i]
			if vote.PositionID != positionID || vote.CandidateID == candidateID {
				continue
			}
			if !uc.canDonate(vote.CandidateID, state) {
				continue
			}
			if err := uc.Votes.RepointVote(ctx, vote.VoteID, candidateID, uc.Clock.Now().UTC()); err != nil {
				return err
			}
			state.counts[vote.CandidateID]--
			state.counts[candidateID]++
			state.shortfall[candidateID]--
			vote.CandidateID = candidateID
			report.VotesRepointed++
		}
	}
	return nil
}

func (uc SimulateUseCase) canDonate(candidateID string, state *simulationState) bool {
	target, targeted := state.targets[candidateID]
	if !targeted {
		return state.counts[candidateID] > 0
	}
	return state.counts[candidateID] > target
}

func totalShortfall(shortfall map[string]int) int {
	total := 0
	for _, gap := range shortfall {
		total += gap
	}
	return total
}
