//go:generate mockery --name AdminService --output ./mocks --outpkg mocks --case=underscore
// internal/service/admin_service.go
package service

import (
	"context"
	"errors"
	"strings"

	"course_portal/internal/config"
	"course_portal/internal/course"
	"course_portal/internal/middleware"
	"course_portal/internal/model"
	"course_portal/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AccountPublisher はアカウント変更を購読者に届ける (sse.Hub が実装する)
type AccountPublisher interface {
	PublishAccount(accountID uuid.UUID, data any)
}

// AdminService は管理画面と管理CLIの操作。courseAccess / paymentStatus を書き換えるのはここだけ
type AdminService interface {
	ListAccounts(ctx context.Context, filter model.AccountFilter) ([]*model.AccountResponse, error)
	Stats(ctx context.Context) (*model.AdminStats, error)
	GrantAccess(ctx context.Context, accountID uuid.UUID, courseIDs []string) (*model.AccountResponse, error)
	MarkContacted(ctx context.Context, accountID uuid.UUID, contacted bool) (*model.AccountResponse, error)
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
	Promote(ctx context.Context, accountID uuid.UUID) error
	CreateAccount(ctx context.Context, name, email, password string, isAdmin bool) (*model.Account, error)
}

type adminService struct {
	db          *gorm.DB
	accountRepo repository.AccountRepository
	catalog     *course.Catalog
	mailer      Mailer
	publisher   AccountPublisher
	cfg         *config.Config
}

func NewAdminService(db *gorm.DB, accountRepo repository.AccountRepository, catalog *course.Catalog, mailer Mailer, publisher AccountPublisher, cfg *config.Config) AdminService {
	return &adminService{
		db:          db,
		accountRepo: accountRepo,
		catalog:     catalog,
		mailer:      mailer,
		publisher:   publisher,
		cfg:         cfg,
	}
}

func (s *adminService) isAdminAccount(a *model.Account) bool {
	return a.IsAdmin || s.cfg.Admin.IsAdminEmail(a.Email)
}

// ListAccounts は管理者以外のアカウントを新しい順に返す
func (s *adminService) ListAccounts(ctx context.Context, filter model.AccountFilter) ([]*model.AccountResponse, error) {
	logger := middleware.GetLogger(ctx)

	if filter.Status != "" && filter.Status != model.PaymentPending && filter.Status != model.PaymentPaid && filter.Status != model.PaymentRejected {
		return nil, model.NewAppError("INVALID_STATUS", "status must be one of: pending, paid, rejected.", "status", model.ErrInvalidInput)
	}

	accounts, err := s.accountRepo.List(ctx, s.db, filter)
	if err != nil {
		logger.Error("Failed to list accounts", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}

	out := make([]*model.AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		if s.isAdminAccount(a) {
			continue
		}
		out = append(out, model.NewAccountResponse(a, false))
	}
	return out, nil
}

// Stats は登録数・支払い状況・売上を集計する。売上は paid のアカウントごとに付与済みコースの最高価格を1回だけ数える
func (s *adminService) Stats(ctx context.Context) (*model.AdminStats, error) {
	logger := middleware.GetLogger(ctx)

	accounts, err := s.accountRepo.List(ctx, s.db, model.AccountFilter{})
	if err != nil {
		logger.Error("Failed to list accounts for stats", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}

	stats := &model.AdminStats{Currency: s.catalog.Currency()}
	for _, a := range accounts {
		if s.isAdminAccount(a) {
			continue
		}
		stats.Total++
		switch a.PaymentStatus {
		case model.PaymentPending:
			stats.Pending++
		case model.PaymentPaid:
			stats.Paid++
			stats.Revenue += s.highestPrice(a.CourseAccess)
		}
	}
	return stats, nil
}

func (s *adminService) highestPrice(access []model.CourseID) int {
	best := 0
	for _, id := range access {
		if p := s.catalog.Price(id); p > best {
			best = p
		}
	}
	return best
}

// GrantAccess はコースを付与して paid にする。bundle は含まれる単品コースにも展開し、既存の付与は残す
func (s *adminService) GrantAccess(ctx context.Context, accountID uuid.UUID, courseIDs []string) (*model.AccountResponse, error) {
	logger := middleware.GetLogger(ctx).With("target_account_id", accountID.String())

	if len(courseIDs) == 0 {
		return nil, model.NewAppError("VALIDATION_ERROR", "At least one course is required.", "courses", model.ErrInvalidInput)
	}
	requested := make([]model.CourseID, 0, len(courseIDs))
	for _, raw := range courseIDs {
		id, err := model.ParseCourseID(raw)
		if err != nil {
			return nil, model.NewAppError("INVALID_COURSE", "Unknown course '"+raw+"'.", "courses", model.ErrInvalidInput)
		}
		if _, err := s.catalog.Lookup(id); err != nil {
			return nil, model.NewAppError("INVALID_COURSE", "Course '"+raw+"' is not in the catalog.", "courses", model.ErrInvalidInput)
		}
		requested = append(requested, id)
	}
	granted := s.catalog.Expand(requested)

	var updated *model.Account
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		account, err := s.accountRepo.FindByID(ctx, tx, accountID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("ACCOUNT_NOT_FOUND", "Account not found.", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
		}

		access := s.catalog.Expand(append(append([]model.CourseID{}, account.CourseAccess...), granted...))
		if err := s.accountRepo.UpdateAccess(ctx, tx, accountID, access, model.PaymentPaid); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to update course access.", "", err)
		}
		account.CourseAccess = access
		account.PaymentStatus = model.PaymentPaid
		updated = account
		return nil
	})
	if err != nil {
		logger.Error("Grant access failed", "error", err)
		return nil, err
	}

	resp := model.NewAccountResponse(updated, s.isAdminAccount(updated))
	s.publisher.PublishAccount(accountID, resp)

	subject, body := accessGrantedMail(s.cfg.App.Name, s.cfg.App.FrontendURL, updated, granted)
	if err := s.mailer.Send(ctx, updated.Email, subject, body); err != nil {
		logger.Warn("Failed to send access granted mail", "error", err)
	}

	logger.Info("Course access granted", "granted", granted, "course_access", []model.CourseID(updated.CourseAccess))
	return resp, nil
}

func (s *adminService) MarkContacted(ctx context.Context, accountID uuid.UUID, contacted bool) (*model.AccountResponse, error) {
	logger := middleware.GetLogger(ctx).With("target_account_id", accountID.String())

	if err := s.accountRepo.SetContacted(ctx, s.db, accountID, contacted); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("ACCOUNT_NOT_FOUND", "Account not found.", "", model.ErrNotFound)
		}
		logger.Error("Failed to mark account contacted", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}

	account, err := s.accountRepo.FindByID(ctx, s.db, accountID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}
	logger.Info("Account contact flag updated", "contacted", contacted)
	return model.NewAccountResponse(account, s.isAdminAccount(account)), nil
}

func (s *adminService) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	account, err := s.accountRepo.FindByEmail(ctx, s.db, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("ACCOUNT_NOT_FOUND", "No account with email '"+email+"'.", "email", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}
	return account, nil
}

func (s *adminService) Promote(ctx context.Context, accountID uuid.UUID) error {
	if err := s.accountRepo.SetAdmin(ctx, s.db, accountID, true); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("ACCOUNT_NOT_FOUND", "Account not found.", "", model.ErrNotFound)
		}
		return model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}
	middleware.GetLogger(ctx).Info("Account promoted to admin", "target_account_id", accountID.String())
	return nil
}

// CreateAccount は管理CLIからのアカウント作成。受講権限は付けない
func (s *adminService) CreateAccount(ctx context.Context, name, email, password string, isAdmin bool) (*model.Account, error) {
	if len(password) < 8 {
		return nil, model.NewAppError("VALIDATION_ERROR", "Password must be at least 8 characters.", "password", model.ErrInvalidInput)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to process the password.", "", err)
	}

	account := &model.Account{
		AccountID:     uuid.New(),
		Email:         normalizeEmail(email),
		Name:          strings.TrimSpace(name),
		PasswordHash:  string(hashed),
		IsAdmin:       isAdmin,
		CourseAccess:  []model.CourseID{},
		PaymentStatus: model.PaymentPending,
	}
	if err := s.accountRepo.Create(ctx, s.db, account); err != nil {
		if errors.Is(err, model.ErrConflict) {
			return nil, model.NewAppError("DUPLICATE_EMAIL", "This email address is already registered.", "email", model.ErrConflict)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to create the account.", "", err)
	}
	return account, nil
}
