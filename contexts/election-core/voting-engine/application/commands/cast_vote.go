package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "electora/contexts/election-core/voting-engine/application"
	"electora/contexts/election-core/voting-engine/domain/entities"
	domainerrors "electora/contexts/election-core/voting-engine/domain/errors"
	"electora/contexts/election-core/voting-engine/ports"
)

// CastVoteCommand is the write-model input for ballot casting.
type CastVoteCommand struct {
	VoterID     string
	CandidateID string
}

// CastVoteUseCase enforces the ledger invariant: one vote per
// (voter, position, cycle). The uniqueness check is serialized by the store's
// composite constraint; a duplicate insert surfaces as ErrAlreadyVoted so a
// losing racer never observes a silent double count.
type CastVoteUseCase struct {
	Votes   ports.VoteRepository
	Catalog ports.BallotCatalog
	Cycles  ports.CycleRegistry
	Voters  ports.VoterDirectory
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Logger  *slog.Logger
}

// CastVote validates eligibility, resolves the candidate's position and cycle,
// requires that cycle to be the single active one, and appends the vote.
func (uc CastVoteUseCase) CastVote(ctx context.Context, cmd CastVoteCommand) (entities.Vote, error) {
	logger := application.ResolveLogger(uc.Logger)
	voterID := strings.TrimSpace(cmd.VoterID)
	candidateID := strings.TrimSpace(cmd.CandidateID)
	if voterID == "" || candidateID == "" {
		return entities.Vote{}, domainerrors.ErrInvalidVoteInput
	}

	voter, err := uc.Voters.GetVoter(ctx, voterID)
	if err != nil {
		return entities.Vote{}, err
	}
	if !strings.EqualFold(voter.Role, "member") {
		logger.Warn("vote rejected for non-member",
			"event", "voting_cast_not_eligible",
			"module", "election-core/voting-engine",
			"layer", "application",
			"voter_id", voterID,
			"role", voter.Role,
		)
		return entities.Vote{}, domainerrors.ErrNotEligible
	}

	candidate, err := uc.Catalog.GetCandidate(ctx, candidateID)
	if err != nil {
		return entities.Vote{}, err
	}

	cycle, err := uc.Cycles.GetCycle(ctx, candidate.CycleID)
	if err != nil {
		return entities.Vote{}, err
	}
	if !cycle.IsActive {
		return entities.Vote{}, domainerrors.ErrVotingClosed
	}

	key := entities.BallotKey{
		VoterID:    voterID,
		PositionID: candidate.PositionID,
		CycleID:    candidate.CycleID,
	}
	if _, found, err := uc.Votes.GetVoteByBallotKey(ctx, key); err != nil {
		return entities.Vote{}, err
	} else if found {
		return entities.Vote{}, domainerrors.ErrAlreadyVoted
	}

	voteID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Vote{}, err
	}
	now := uc.Clock.Now().UTC()
	vote := entities.Vote{
		VoteID:      voteID,
		VoterID:     voterID,
		CandidateID: candidate.CandidateID,
		PositionID:  candidate.PositionID,
		CycleID:     candidate.CycleID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.Votes.InsertVote(ctx, vote); err != nil {
		// A concurrent racer already holds the ballot key.
		if errors.Is(err, domainerrors.ErrAlreadyVoted) {
			return entities.Vote{}, domainerrors.ErrAlreadyVoted
		}
		return entities.Vote{}, err
	}

	logger.Info("vote cast",
		"event", "voting_vote_cast",
		"module", "election-core/voting-engine",
		"layer", "application",
		"vote_id", vote.VoteID,
		"voter_id", vote.VoterID,
		"candidate_id", vote.CandidateID,
		"position_id", vote.PositionID,
		"cycle_id", vote.CycleID,
	)
	return vote, nil
}
