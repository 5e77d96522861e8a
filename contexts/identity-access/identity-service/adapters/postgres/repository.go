package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"electora/contexts/identity-access/identity-service/domain/entities"
	domainerrors "electora/contexts/identity-access/identity-service/domain/errors"
	"electora/contexts/identity-access/identity-service/ports"

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

func (r *Repository) CreateUser(ctx context.Context, user entities.User) error {
	row := userModelFromEntity(user)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "membership") {
				return domainerrors.ErrMembershipIDTaken
			}
			return domainerrors.ErrEmailTaken
		}
		return r.logError("identity_repo_create_user_failed", err,
			"user_id", row.ID,
		)
	}
	return nil
}

func (r *Repository) GetUserByID(ctx context.Context, userID string) (entities.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(userID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, domainerrors.ErrUserNotFound
		}
		return entities.User{}, r.logError("identity_repo_get_user_failed", err,
			"user_id", strings.TrimSpace(userID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (entities.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, domainerrors.ErrUserNotFound
		}
		return entities.User{}, r.logError("identity_repo_get_user_by_email_failed", err)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListUsers(ctx context.Context) ([]entities.User, error) {
	var rows []userModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("identity_repo_list_users_failed", err)
	}
	items := make([]entities.User, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) UpdateUser(ctx context.Context, user entities.User) error {
	result := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("id = ?", strings.TrimSpace(user.UserID)).
		Updates(map[string]any{
			"title":       user.Title,
			"first_name":  user.FirstName,
			"middle_name": user.MiddleName,
			"last_name":   user.LastName,
			"phone":       user.Phone,
			"role":        user.Role,
			"updated_at":  user.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		return r.logError("identity_repo_update_user_failed", result.Error,
			"user_id", strings.TrimSpace(user.UserID),
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

func (r *Repository) DeleteUser(ctx context.Context, userID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(userID)).
		Delete(&userModel{})
	if result.Error != nil {
		return r.logError("identity_repo_delete_user_failed", result.Error,
			"user_id", strings.TrimSpace(userID),
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "identity-access/identity-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("identity repository operation failed", fields...)
	return err
}

type userModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	Title        string    `gorm:"column:title"`
	FirstName    string    `gorm:"column:first_name"`
	MiddleName   string    `gorm:"column:middle_name"`
	LastName     string    `gorm:"column:last_name"`
	Email        string    `gorm:"column:email"`
	Phone        string    `gorm:"column:phone"`
	MembershipID string    `gorm:"column:membership_id"`
	Role         string    `gorm:"column:role"`
	PasswordHash string    `gorm:"column:password_hash"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string {
	return "users"
}

func userModelFromEntity(user entities.User) userModel {
	return userModel{
		ID:           strings.TrimSpace(user.UserID),
		Title:        user.Title,
		FirstName:    user.FirstName,
		MiddleName:   user.MiddleName,
		LastName:     user.LastName,
		Email:        strings.ToLower(strings.TrimSpace(user.Email)),
		Phone:        user.Phone,
		MembershipID: strings.TrimSpace(user.MembershipID),
		Role:         user.Role,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt.UTC(),
		UpdatedAt:    user.UpdatedAt.UTC(),
	}
}

func (m userModel) toEntity() entities.User {
	return entities.User{
		UserID:       m.ID,
		Title:        m.Title,
		FirstName:    m.FirstName,
		MiddleName:   m.MiddleName,
		LastName:     m.LastName,
		Email:        m.Email,
		Phone:        m.Phone,
		MembershipID: m.MembershipID,
		Role:         m.Role,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

var _ ports.UserRepository = (*Repository)(nil)
