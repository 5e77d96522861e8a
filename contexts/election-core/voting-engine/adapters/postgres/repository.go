package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"electora/contexts/election-core/voting-engine/domain/entities"
	domainerrors "electora/contexts/election-core/voting-engine/domain/errors"
	"electora/contexts/election-core/voting-engine/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// InsertVote appends a ledger row. The unique index on
// (voter_id, position_id, voting_cycle_id) closes the check-then-insert race:
// the losing concurrent insert comes back as SQLSTATE 23505 and is mapped to
// ErrAlreadyVoted rather than a generic storage error.
func (r *Repository) InsertVote(ctx context.Context, vote entities.Vote) error {
	row := voteModelFromEntity(vote)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyVoted
		}
		return r.logError("voting_repo_insert_vote_failed", err,
			"vote_id", row.ID,
			"voter_id", row.VoterID,
			"position_id", row.PositionID,
			"cycle_id", row.VotingCycleID,
		)
	}
	return nil
}

func (r *Repository) GetVoteByBallotKey(ctx context.Context, key entities.BallotKey) (entities.Vote, bool, error) {
	var row voteModel
	err := r.db.WithContext(ctx).
		Where("voter_id = ?", strings.TrimSpace(key.VoterID)).
		Where("position_id = ?", strings.TrimSpace(key.PositionID)).
		Where("voting_cycle_id = ?", strings.TrimSpace(key.CycleID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Vote{}, false, nil
		}
		return entities.Vote{}, false, r.logError("voting_repo_get_vote_by_key_failed", err,
			"voter_id", strings.TrimSpace(key.VoterID),
			"position_id", strings.TrimSpace(key.PositionID),
			"cycle_id", strings.TrimSpace(key.CycleID),
		)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListVotesByCycle(ctx context.Context, cycleID string) ([]entities.Vote, error) {
	var rows []voteModel
	if err := r.db.WithContext(ctx).
		Where("voting_cycle_id = ?", strings.TrimSpace(cycleID)).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("voting_repo_list_votes_by_cycle_failed", err,
			"cycle_id", strings.TrimSpace(cycleID),
		)
	}
	return toVoteEntities(rows), nil
}

func (r *Repository) ListVotesByVoter(ctx context.Context, voterID string, cycleID string) ([]entities.Vote, error) {
	var rows []voteModel
	if err := r.db.WithContext(ctx).
		Where("voter_id = ?", strings.TrimSpace(voterID)).
		Where("voting_cycle_id = ?", strings.TrimSpace(cycleID)).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("voting_repo_list_votes_by_voter_failed", err,
			"voter_id", strings.TrimSpace(voterID),
			"cycle_id", strings.TrimSpace(cycleID),
		)
	}
	return toVoteEntities(rows), nil
}

// RepointVote changes only candidate_id on an existing row; voter, position,
// and cycle stay fixed so the ballot key is preserved. Simulation-only path.
func (r *Repository) RepointVote(ctx context.Context, voteID string, candidateID string, updatedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&voteModel{}).
		Where("id = ?", strings.TrimSpace(voteID)).
		Updates(map[string]any{
			"candidate_id": strings.TrimSpace(candidateID),
			"updated_at":   updatedAt.UTC(),
		})
	if result.Error != nil {
		return r.logError("voting_repo_repoint_vote_failed", result.Error,
			"vote_id", strings.TrimSpace(voteID),
			"candidate_id", strings.TrimSpace(candidateID),
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrVoteNotFound
	}
	return nil
}

func (r *Repository) GetCandidate(ctx context.Context, candidateID string) (ports.CandidateRef, error) {
	var row candidateProjectionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(candidateID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.CandidateRef{}, domainerrors.ErrCandidateNotFound
		}
		return ports.CandidateRef{}, r.logError("voting_repo_get_candidate_failed", err,
			"candidate_id", strings.TrimSpace(candidateID),
		)
	}
	return row.toRef(), nil
}

func (r *Repository) ListPositionsByCycle(ctx context.Context, cycleID string) ([]ports.PositionRef, error) {
	var rows []positionProjectionModel
	if err := r.db.WithContext(ctx).
		Where("voting_cycle_id = ?", strings.TrimSpace(cycleID)).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("voting_repo_list_positions_failed", err,
			"cycle_id", strings.TrimSpace(cycleID),
		)
	}
	items := make([]ports.PositionRef, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.PositionRef{
			PositionID: row.ID,
			CycleID:    row.VotingCycleID,
			Name:       row.Name,
		})
	}
	return items, nil
}

func (r *Repository) ListCandidatesByCycle(ctx context.Context, cycleID string) ([]ports.CandidateRef, error) {
	var rows []candidateProjectionModel
	if err := r.db.WithContext(ctx).
		Where("voting_cycle_id = ?", strings.TrimSpace(cycleID)).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("voting_repo_list_candidates_failed", err,
			"cycle_id", strings.TrimSpace(cycleID),
		)
	}
	items := make([]ports.CandidateRef, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toRef())
	}
	return items, nil
}

func (r *Repository) GetCycle(ctx context.Context, cycleID string) (ports.CycleRef, error) {
	var row cycleProjectionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(cycleID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.CycleRef{}, domainerrors.ErrCycleNotFound
		}
		return ports.CycleRef{}, r.logError("voting_repo_get_cycle_failed", err,
			"cycle_id", strings.TrimSpace(cycleID),
		)
	}
	return ports.CycleRef{
		CycleID:  row.ID,
		Year:     row.Year,
		IsActive: row.IsActive,
	}, nil
}

func (r *Repository) GetVoter(ctx context.Context, voterID string) (ports.VoterRef, error) {
	var row voterProjectionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(voterID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.VoterRef{}, domainerrors.ErrVoterNotFound
		}
		return ports.VoterRef{}, r.logError("voting_repo_get_voter_failed", err,
			"voter_id", strings.TrimSpace(voterID),
		)
	}
	return ports.VoterRef{VoterID: row.ID, Role: row.Role}, nil
}

func (r *Repository) ListMembers(ctx context.Context) ([]ports.VoterRef, error) {
	var rows []voterProjectionModel
	if err := r.db.WithContext(ctx).
		Where("role = ?", "member").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("voting_repo_list_members_failed", err)
	}
	items := make([]ports.VoterRef, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.VoterRef{VoterID: row.ID, Role: row.Role})
	}
	return items, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "election-core/voting-engine",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("voting repository operation failed", fields...)
	return err
}

type voteModel struct {
	ID            string    `gorm:"column:id;primaryKey"`
	VoterID       string    `gorm:"column:voter_id"`
	CandidateID   string    `gorm:"column:candidate_id"`
	PositionID    string    `gorm:"column:position_id"`
	VotingCycleID string    `gorm:"column:voting_cycle_id"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (voteModel) TableName() string {
	return "votes"
}

func voteModelFromEntity(vote entities.Vote) voteModel {
	row := voteModel{
		ID:            strings.TrimSpace(vote.VoteID),
		VoterID:       strings.TrimSpace(vote.VoterID),
		CandidateID:   strings.TrimSpace(vote.CandidateID),
		PositionID:    strings.TrimSpace(vote.PositionID),
		VotingCycleID: strings.TrimSpace(vote.CycleID),
		CreatedAt:     vote.CreatedAt.UTC(),
		UpdatedAt:     vote.UpdatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = row.CreatedAt
	}
	return row
}

func (m voteModel) toEntity() entities.Vote {
	return entities.Vote{
		VoteID:      m.ID,
		VoterID:     m.VoterID,
		CandidateID: m.CandidateID,
		PositionID:  m.PositionID,
		CycleID:     m.VotingCycleID,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

type candidateProjectionModel struct {
	ID            string `gorm:"column:id;primaryKey"`
	Title         string `gorm:"column:title"`
	FirstName     string `gorm:"column:first_name"`
	MiddleName    string `gorm:"column:middle_name"`
	LastName      string `gorm:"column:last_name"`
	Photo         string `gorm:"column:photo"`
	PositionID    string `gorm:"column:position_id"`
	VotingCycleID string `gorm:"column:voting_cycle_id"`
}

func (candidateProjectionModel) TableName() string {
	return "candidates"
}

func (m candidateProjectionModel) toRef() ports.CandidateRef {
	name := strings.TrimSpace(strings.Join([]string{m.FirstName, m.LastName}, " "))
	return ports.CandidateRef{
		CandidateID: m.ID,
		PositionID:  m.PositionID,
		CycleID:     m.VotingCycleID,
		Name:        name,
		Photo:       m.Photo,
	}
}

type positionProjectionModel struct {
	ID            string `gorm:"column:id;primaryKey"`
	Name          string `gorm:"column:name"`
	VotingCycleID string `gorm:"column:voting_cycle_id"`
}

func (positionProjectionModel) TableName() string {
	return "positions"
}

type cycleProjectionModel struct {
	ID       string `gorm:"column:id;primaryKey"`
	Year     int    `gorm:"column:year"`
	IsActive bool   `gorm:"column:is_active"`
}

func (cycleProjectionModel) TableName() string {
	return "voting_cycles"
}

type voterProjectionModel struct {
	ID   string `gorm:"column:id;primaryKey"`
	Role string `gorm:"column:role"`
}

func (voterProjectionModel) TableName() string {
	return "users"
}

func toVoteEntities(rows []voteModel) []entities.Vote {
	items := make([]entities.Vote, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.VoteRepository = (*Repository)(nil)
var _ ports.BallotCatalog = (*Repository)(nil)
var _ ports.CycleRegistry = (*Repository)(nil)
var _ ports.VoterDirectory = (*Repository)(nil)
