//go:generate mockery --name AccountRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"course_portal/internal/middleware"
	"course_portal/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AccountRepository interface {
	Create(ctx context.Context, db *gorm.DB, account *model.Account) error
	FindByID(ctx context.Context, db *gorm.DB, accountID uuid.UUID) (*model.Account, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.Account, error)
	List(ctx context.Context, db *gorm.DB, filter model.AccountFilter) ([]*model.Account, error)
	// UpdateAccess は courseAccess と paymentStatus だけを書き換える (管理者の付与操作専用)
	UpdateAccess(ctx context.Context, db *gorm.DB, accountID uuid.UUID, access []model.CourseID, status model.PaymentStatus) error
	SetContacted(ctx context.Context, db *gorm.DB, accountID uuid.UUID, contacted bool) error
	SetAdmin(ctx context.Context, db *gorm.DB, accountID uuid.UUID, isAdmin bool) error
}

type gormAccountRepository struct{}

func NewGormAccountRepository() AccountRepository {
	return &gormAccountRepository{}
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *gormAccountRepository) Create(ctx context.Context, db *gorm.DB, account *model.Account) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Create(account)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			logger.Warn("Duplicate key error on create account", "error", result.Error, "email", account.Email)
			return model.ErrConflict
		}
		logger.Error("Error creating account in DB", "error", result.Error, "email", account.Email)
		return fmt.Errorf("gormAccountRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormAccountRepository) FindByID(ctx context.Context, db *gorm.DB, accountID uuid.UUID) (*model.Account, error) {
	logger := middleware.GetLogger(ctx)
	var account model.Account

	result := db.WithContext(ctx).Where("account_id = ?", accountID).First(&account)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding account by ID in DB", "error", result.Error, "account_id", accountID.String())
		return nil, fmt.Errorf("gormAccountRepository.FindByID: %w", result.Error)
	}
	return &account, nil
}

func (r *gormAccountRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.Account, error) {
	logger := middleware.GetLogger(ctx)
	var account model.Account

	result := db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&account)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			logger.Debug("Account not found by email", "email", email)
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding account by email in DB", "error", result.Error, "email", email)
		return nil, fmt.Errorf("gormAccountRepository.FindByEmail: %w", result.Error)
	}
	return &account, nil
}

// List は管理者以外のアカウントを新しい順に返す。Query は名前・メール・電話番号の部分一致 (大文字小文字を区別しない)
func (r *gormAccountRepository) List(ctx context.Context, db *gorm.DB, filter model.AccountFilter) ([]*model.Account, error) {
	logger := middleware.GetLogger(ctx)
	var accounts []*model.Account

	q := db.WithContext(ctx).Model(&model.Account{}).Where("is_admin = ?", false)
	if filter.Status != "" {
		q = q.Where("payment_status = ?", filter.Status)
	}
	if query := strings.TrimSpace(filter.Query); query != "" {
		like := "%" + strings.ToLower(query) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?", like, like, like)
	}

	if err := q.Order("created_at DESC").Find(&accounts).Error; err != nil {
		logger.Error("Error listing accounts in DB", "error", err, "status", filter.Status)
		return nil, fmt.Errorf("gormAccountRepository.List: %w", err)
	}
	return accounts, nil
}

func (r *gormAccountRepository) UpdateAccess(ctx context.Context, db *gorm.DB, accountID uuid.UUID, access []model.CourseID, status model.PaymentStatus) error {
	return r.updateColumns(ctx, db, "UpdateAccess", accountID, map[string]interface{}{
		"course_access":  datatypesCourseAccess(access),
		"payment_status": status,
	})
}

// courseAccess は空でも JSON の [] として保存する
func datatypesCourseAccess(access []model.CourseID) datatypes.JSONSlice[model.CourseID] {
	if access == nil {
		access = []model.CourseID{}
	}
	return datatypes.JSONSlice[model.CourseID](access)
}

func (r *gormAccountRepository) SetContacted(ctx context.Context, db *gorm.DB, accountID uuid.UUID, contacted bool) error {
	return r.updateColumns(ctx, db, "SetContacted", accountID, map[string]interface{}{"whatsapp_contacted": contacted})
}

func (r *gormAccountRepository) SetAdmin(ctx context.Context, db *gorm.DB, accountID uuid.UUID, isAdmin bool) error {
	return r.updateColumns(ctx, db, "SetAdmin", accountID, map[string]interface{}{"is_admin": isAdmin})
}

func (r *gormAccountRepository) updateColumns(ctx context.Context, db *gorm.DB, op string, accountID uuid.UUID, columns map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Model(&model.Account{}).Where("account_id = ?", accountID).Updates(columns)
	if result.Error != nil {
		logger.Error("Error updating account in DB", "error", result.Error, "op", op, "account_id", accountID.String())
		return fmt.Errorf("gormAccountRepository.%s: %w", op, result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
