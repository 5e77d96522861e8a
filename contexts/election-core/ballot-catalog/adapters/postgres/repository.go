package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"electora/contexts/election-core/ballot-catalog/domain/entities"
	domainerrors "electora/contexts/election-core/ballot-catalog/domain/errors"
	"electora/contexts/election-core/ballot-catalog/ports"

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

func (r *Repository) CycleExists(ctx context.Context, cycleID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("voting_cycles").
		Where("id = ?", strings.TrimSpace(cycleID)).
		Count(&count).Error; err != nil {
		return false, r.logError("ballot_repo_cycle_exists_failed", err,
			"cycle_id", strings.TrimSpace(cycleID),
		)
	}
	return count > 0, nil
}

func (r *Repository) CreatePosition(ctx context.Context, position entities.Position) error {
	row := positionModelFromEntity(position)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("ballot_repo_create_position_failed", err,
			"position_id", row.ID,
			"cycle_id", row.VotingCycleID,
		)
	}
	return nil
}

func (r *Repository) GetPosition(ctx context.Context, positionID string) (entities.Position, error) {
	var row positionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(positionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Position{}, domainerrors.ErrPositionNotFound
		}
		return entities.Position{}, r.logError("ballot_repo_get_position_failed", err,
			"position_id", strings.TrimSpace(positionID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListPositionsByCycle(ctx context.Context, cycleID string) ([]entities.Position, error) {
	var rows []positionModel
	if err := r.db.WithContext(ctx).
		Where("voting_cycle_id = ?", strings.TrimSpace(cycleID)).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("ballot_repo_list_positions_failed", err,
			"cycle_id", strings.TrimSpace(cycleID),
		)
	}
	items := make([]entities.Position, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) UpdatePosition(ctx context.Context, position entities.Position) error {
	result := r.db.WithContext(ctx).
		Model(&positionModel{}).
		Where("id = ?", strings.TrimSpace(position.PositionID)).
		Updates(map[string]any{
			"name":        position.Name,
			"description": position.Description,
			"updated_at":  position.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		return r.logError("ballot_repo_update_position_failed", result.Error,
			"position_id", strings.TrimSpace(position.PositionID),
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPositionNotFound
	}
	return nil
}

// DeletePosition removes the position and its candidates in one transaction.
// Positions with ledger rows are protected.
func (r *Repository) DeletePosition(ctx context.Context, positionID string) error {
	positionID = strings.TrimSpace(positionID)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var voteCount int64
		if err := tx.Table("votes").
			Where("position_id = ?", positionID).
			Count(&voteCount).Error; err != nil {
			return err
		}
		if voteCount > 0 {
			return domainerrors.ErrBallotInUse
		}
		if err := tx.Where("position_id = ?", positionID).
			Delete(&candidateModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", positionID).Delete(&positionModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrPositionNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrBallotInUse) || errors.Is(err, domainerrors.ErrPositionNotFound) {
			return err
		}
		return r.logError("ballot_repo_delete_position_failed", err,
			"position_id", positionID,
		)
	}
	return nil
}

func (r *Repository) CreateCandidate(ctx context.Context, candidate entities.Candidate) error {
	row := candidateModelFromEntity(candidate)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("ballot_repo_create_candidate_failed", err,
			"candidate_id", row.ID,
			"position_id", row.PositionID,
		)
	}
	return nil
}

func (r *Repository) GetCandidate(ctx context.Context, candidateID string) (entities.Candidate, error) {
	var row candidateModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(candidateID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Candidate{}, domainerrors.ErrCandidateNotFound
		}
		return entities.Candidate{}, r.logError("ballot_repo_get_candidate_failed", err,
			"candidate_id", strings.TrimSpace(candidateID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListCandidatesByCycle(ctx context.Context, cycleID string) ([]entities.Candidate, error) {
	var rows []candidateModel
	if err := r.db.WithContext(ctx).
		Where("voting_cycle_id = ?", strings.TrimSpace(cycleID)).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("ballot_repo_list_candidates_by_cycle_failed", err,
			"cycle_id", strings.TrimSpace(cycleID),
		)
	}
	return toCandidateEntities(rows), nil
}

func (r *Repository) ListCandidatesByPosition(ctx context.Context, positionID string) ([]entities.Candidate, error) {
	var rows []candidateModel
	if err := r.db.WithContext(ctx).
		Where("position_id = ?", strings.TrimSpace(positionID)).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("ballot_repo_list_candidates_by_position_failed", err,
			"position_id", strings.TrimSpace(positionID),
		)
	}
	return toCandidateEntities(rows), nil
}

func (r *Repository) UpdateCandidate(ctx context.Context, candidate entities.Candidate) error {
	result := r.db.WithContext(ctx).
		Model(&candidateModel{}).
		Where("id = ?", strings.TrimSpace(candidate.CandidateID)).
		Updates(map[string]any{
			"position_id": candidate.PositionID,
			"title":       candidate.Title,
			"first_name":  candidate.FirstName,
			"middle_name": candidate.MiddleName,
			"last_name":   candidate.LastName,
			"photo":       candidate.Photo,
			"manifesto":   candidate.Manifesto,
			"updated_at":  candidate.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		return r.logError("ballot_repo_update_candidate_failed", result.Error,
			"candidate_id", strings.TrimSpace(candidate.CandidateID),
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCandidateNotFound
	}
	return nil
}

func (r *Repository) DeleteCandidate(ctx context.Context, candidateID string) error {
	candidateID = strings.TrimSpace(candidateID)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var voteCount int64
		if err := tx.Table("votes").
			Where("candidate_id = ?", candidateID).
			Count(&voteCount).Error; err != nil {
			return err
		}
		if voteCount > 0 {
			return domainerrors.ErrBallotInUse
		}
		result := tx.Where("id = ?", candidateID).Delete(&candidateModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrCandidateNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrBallotInUse) || errors.Is(err, domainerrors.ErrCandidateNotFound) {
			return err
		}
		return r.logError("ballot_repo_delete_candidate_failed", err,
			"candidate_id", candidateID,
		)
	}
	return nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "election-core/ballot-catalog",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("ballot repository operation failed", fields...)
	return err
}

type positionModel struct {
	ID            string    `gorm:"column:id;primaryKey"`
	Name          string    `gorm:"column:name"`
	Description   string    `gorm:"column:description"`
	VotingCycleID string    `gorm:"column:voting_cycle_id"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (positionModel) TableName() string {
	return "positions"
}

func positionModelFromEntity(position entities.Position) positionModel {
	return positionModel{
		ID:            strings.TrimSpace(position.PositionID),
		Name:          position.Name,
		Description:   position.Description,
		VotingCycleID: strings.TrimSpace(position.CycleID),
		CreatedAt:     position.CreatedAt.UTC(),
		UpdatedAt:     position.UpdatedAt.UTC(),
	}
}

func (m positionModel) toEntity() entities.Position {
	return entities.Position{
		PositionID:  m.ID,
		CycleID:     m.VotingCycleID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

type candidateModel struct {
	ID            string    `gorm:"column:id;primaryKey"`
	PositionID    string    `gorm:"column:position_id"`
	VotingCycleID string    `gorm:"column:voting_cycle_id"`
	Title         string    `gorm:"column:title"`
	FirstName     string    `gorm:"column:first_name"`
	MiddleName    string    `gorm:"column:middle_name"`
	LastName      string    `gorm:"column:last_name"`
	Photo         string    `gorm:"column:photo"`
	Manifesto     string    `gorm:"column:manifesto"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (candidateModel) TableName() string {
	return "candidates"
}

func candidateModelFromEntity(candidate entities.Candidate) candidateModel {
	return candidateModel{
		ID:            strings.TrimSpace(candidate.CandidateID),
		PositionID:    strings.TrimSpace(candidate.PositionID),
		VotingCycleID: strings.TrimSpace(candidate.CycleID),
		Title:         candidate.Title,
		FirstName:     candidate.FirstName,
		MiddleName:    candidate.MiddleName,
		LastName:      candidate.LastName,
		Photo:         candidate.Photo,
		Manifesto:     candidate.Manifesto,
		CreatedAt:     candidate.CreatedAt.UTC(),
		UpdatedAt:     candidate.UpdatedAt.UTC(),
	}
}

func (m candidateModel) toEntity() entities.Candidate {
	return entities.Candidate{
		CandidateID: m.ID,
		PositionID:  m.PositionID,
		CycleID:     m.VotingCycleID,
		Title:       m.Title,
		FirstName:   m.FirstName,
		MiddleName:  m.MiddleName,
		LastName:    m.LastName,
		Photo:       m.Photo,
		Manifesto:   m.Manifesto,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func toCandidateEntities(rows []candidateModel) []entities.Candidate {
	items := make([]entities.Candidate, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}

var _ ports.BallotRepository = (*Repository)(nil)
var _ ports.CycleLookup = (*Repository)(nil)
