package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"electora/contexts/election-core/cycle-registry/domain/entities"
	domainerrors "electora/contexts/election-core/cycle-registry/domain/errors"
	"electora/contexts/election-core/cycle-registry/ports"

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

func (r *Repository) CreateCycle(ctx context.Context, cycle entities.VotingCycle) error {
	row := cycleModelFromEntity(cycle)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrCycleExists
		}
		return r.logError("cycle_repo_create_failed", err,
			"cycle_id", row.ID,
			"year", row.Year,
		)
	}
	return nil
}

func (r *Repository) GetCycle(ctx context.Context, cycleID string) (entities.VotingCycle, error) {
	var row cycleModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(cycleID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.VotingCycle{}, domainerrors.ErrCycleNotFound
		}
		return entities.VotingCycle{}, r.logError("cycle_repo_get_failed", err,
			"cycle_id", strings.TrimSpace(cycleID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) GetActiveCycle(ctx context.Context) (entities.VotingCycle, error) {
	var row cycleModel
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.VotingCycle{}, domainerrors.ErrNoActiveCycle
		}
		return entities.VotingCycle{}, r.logError("cycle_repo_get_active_failed", err)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListCycles(ctx context.Context) ([]entities.VotingCycle, error) {
	var rows []cycleModel
	if err := r.db.WithContext(ctx).
		Order("year DESC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("cycle_repo_list_failed", err)
	}
	items := make([]entities.VotingCycle, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) UpdateCycle(ctx context.Context, cycleID string, year int, startDate time.Time, endDate time.Time, updatedAt time.Time) (entities.VotingCycle, error) {
	result := r.db.WithContext(ctx).
		Model(&cycleModel{}).
		Where("id = ?", strings.TrimSpace(cycleID)).
		Updates(map[string]any{
			"year":       year,
			"start_date": startDate.UTC(),
			"end_date":   endDate.UTC(),
			"updated_at": updatedAt.UTC(),
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return entities.VotingCycle{}, domainerrors.ErrCycleExists
		}
		return entities.VotingCycle{}, r.logError("cycle_repo_update_failed", result.Error,
			"cycle_id", strings.TrimSpace(cycleID),
			"year", year,
		)
	}
	if result.RowsAffected == 0 {
		return entities.VotingCycle{}, domainerrors.ErrCycleNotFound
	}
	return r.GetCycle(ctx, cycleID)
}

// SetActiveCycle swaps the active flag in one transaction: every active row is
// cleared, then the target is set. An unknown target rolls the whole swap back
// so the previously active cycle stays active.
func (r *Repository) SetActiveCycle(ctx context.Context, cycleID string, updatedAt time.Time) (entities.VotingCycle, error) {
	cycleID = strings.TrimSpace(cycleID)
	var activated cycleModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&cycleModel{}).
			Where("is_active = ?", true).
			Updates(map[string]any{
				"is_active":  false,
				"updated_at": updatedAt.UTC(),
			}).Error; err != nil {
			return err
		}
		result := tx.Model(&cycleModel{}).
			Where("id = ?", cycleID).
			Updates(map[string]any{
				"is_active":  true,
				"updated_at": updatedAt.UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrCycleNotFound
		}
		return tx.Where("id = ?", cycleID).First(&activated).Error
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrCycleNotFound) {
			return entities.VotingCycle{}, err
		}
		return entities.VotingCycle{}, r.logError("cycle_repo_set_active_failed", err,
			"cycle_id", cycleID,
		)
	}
	return activated.toEntity(), nil
}

// DeleteCycle removes a cycle with its positions and candidates. Cycles with
// ledger rows are protected; the count check and the deletes share one
// transaction so a vote cast mid-delete forces a rollback via the foreign key.
func (r *Repository) DeleteCycle(ctx context.Context, cycleID string) error {
	cycleID = strings.TrimSpace(cycleID)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var voteCount int64
		if err := tx.Table("votes").
			Where("voting_cycle_id = ?", cycleID).
			Count(&voteCount).Error; err != nil {
			return err
		}
		if voteCount > 0 {
			return domainerrors.ErrCycleInUse
		}
		if err := tx.Where("voting_cycle_id = ?", cycleID).
			Delete(&candidateRowModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("voting_cycle_id = ?", cycleID).
			Delete(&positionRowModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", cycleID).Delete(&cycleModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrCycleNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrCycleInUse) || errors.Is(err, domainerrors.ErrCycleNotFound) {
			return err
		}
		return r.logError("cycle_repo_delete_failed", err,
			"cycle_id", cycleID,
		)
	}
	return nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "election-core/cycle-registry",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("cycle repository operation failed", fields...)
	return err
}

type cycleModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Year      int       `gorm:"column:year"`
	StartDate time.Time `gorm:"column:start_date"`
	EndDate   time.Time `gorm:"column:end_date"`
	IsActive  bool      `gorm:"column:is_active"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (cycleModel) TableName() string {
	return "voting_cycles"
}

func cycleModelFromEntity(cycle entities.VotingCycle) cycleModel {
	return cycleModel{
		ID:        strings.TrimSpace(cycle.CycleID),
		Year:      cycle.Year,
		StartDate: cycle.StartDate.UTC(),
		EndDate:   cycle.EndDate.UTC(),
		IsActive:  cycle.IsActive,
		CreatedAt: cycle.CreatedAt.UTC(),
		UpdatedAt: cycle.UpdatedAt.UTC(),
	}
}

func (m cycleModel) toEntity() entities.VotingCycle {
	return entities.VotingCycle{
		CycleID:   m.ID,
		Year:      m.Year,
		StartDate: m.StartDate.UTC(),
		EndDate:   m.EndDate.UTC(),
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

type positionRowModel struct {
	ID string `gorm:"column:id;primaryKey"`
}

func (positionRowModel) TableName() string {
	return "positions"
}

type candidateRowModel struct {
	ID string `gorm:"column:id;primaryKey"`
}

func (candidateRowModel) TableName() string {
	return "candidates"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.CycleRepository = (*Repository)(nil)
