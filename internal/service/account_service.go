//go:generate mockery --name AccountService --output ./mocks --outpkg mocks --case=underscore
// internal/service/account_service.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"course_portal/internal/config"
	"course_portal/internal/middleware"
	"course_portal/internal/model"
	"course_portal/internal/repository"
	"course_portal/internal/sse"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AccountService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.Account, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	GetAccount(ctx context.Context, accountID uuid.UUID) (*model.Account, error)
	// GetAccountResponse は is_admin をホワイトリスト込みで判定したレスポンスを返す
	GetAccountResponse(ctx context.Context, accountID uuid.UUID) (*model.AccountResponse, error)
	IsAdmin(ctx context.Context, accountID uuid.UUID) (bool, error)
	// Subscribe はアカウント変更の購読を開始し、最初に送る現在のスナップショットも返す
	Subscribe(ctx context.Context, accountID uuid.UUID) (*sse.Client, *sse.Message, error)
	Unsubscribe(client *sse.Client)
}

type accountService struct {
	db          *gorm.DB
	accountRepo repository.AccountRepository
	mailer      Mailer
	hub         *sse.Hub
	cfg         *config.Config
}

func NewAccountService(db *gorm.DB, accountRepo repository.AccountRepository, mailer Mailer, hub *sse.Hub, cfg *config.Config) AccountService {
	return &accountService{
		db:          db,
		accountRepo: accountRepo,
		mailer:      mailer,
		hub:         hub,
		cfg:         cfg,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register は pending・受講権限なしのアカウントを作成し、受付メールを送ります
func (s *accountService) Register(ctx context.Context, req *model.RegisterRequest) (*model.Account, error) {
	email := normalizeEmail(req.Email)
	logger := middleware.GetLogger(ctx).With("email", email)

	requested, err := model.ParseCourseID(req.RequestedCourse)
	if err != nil {
		return nil, model.NewAppError("INVALID_COURSE", "Requested course does not exist.", "requested_course", model.ErrInvalidInput)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash password", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to process the password.", "", err)
	}

	account := &model.Account{
		AccountID:       uuid.New(),
		Email:           email,
		Name:            strings.TrimSpace(req.Name),
		Phone:           strings.TrimSpace(req.Phone),
		PasswordHash:    string(hashedPassword),
		CourseAccess:    []model.CourseID{},
		PaymentStatus:   model.PaymentPending,
		RequestedCourse: &requested,
		Profile:         req.Profile,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := s.accountRepo.FindByEmail(ctx, tx, email)
		if err == nil {
			logger.Warn("Email already exists")
			return model.NewAppError("DUPLICATE_EMAIL", "This email address is already registered.", "email", model.ErrConflict)
		}
		if !errors.Is(err, model.ErrNotFound) {
			logger.Error("Failed to check email existence", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
		}

		if err := s.accountRepo.Create(ctx, tx, account); err != nil {
			if errors.Is(err, model.ErrConflict) {
				logger.Warn("Conflict during account creation (race condition)", "error", err)
				return model.NewAppError("DUPLICATE_EMAIL", "This email address is already registered.", "email", model.ErrConflict)
			}
			logger.Error("Failed to create account in DB", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to create the account.", "", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// メール送信の失敗で登録は取り消さない
	subject, body := registrationReceivedMail(s.cfg.App.Name, account)
	if err := s.mailer.Send(ctx, account.Email, subject, body); err != nil {
		logger.Warn("Failed to send registration mail", "error", err, "account_id", account.AccountID)
	}

	logger.Info("Account registered", "account_id", account.AccountID, "requested_course", requested)
	return account, nil
}

// Login はメールアドレスとパスワードを検証し、JWT を返します
func (s *accountService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	email := normalizeEmail(req.Email)
	logger := middleware.GetLogger(ctx).With("email", email)
	authFailed := model.NewAppError("AUTHENTICATION_FAILED", "Email or password is incorrect.", "", model.ErrInvalidInput)

	account, err := s.accountRepo.FindByEmail(ctx, s.db, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Login failed: account not found")
			return nil, authFailed
		}
		logger.Error("Login failed: db error on FindByEmail", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		logger.Warn("Login failed: password mismatch", "account_id", account.AccountID)
		return nil, authFailed
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    s.cfg.App.Name,
		Subject:   account.AccountID.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWT.AccessTokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	signedToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		logger.Error("Failed to sign JWT", "error", err, "account_id", account.AccountID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to issue a token.", "", err)
	}

	logger.Info("Login successful", "account_id", account.AccountID)
	return &model.LoginResponse{AccessToken: signedToken}, nil
}

func (s *accountService) GetAccount(ctx context.Context, accountID uuid.UUID) (*model.Account, error) {
	logger := middleware.GetLogger(ctx)

	account, err := s.accountRepo.FindByID(ctx, s.db, accountID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Account not found", "account_id", accountID.String())
			return nil, model.NewAppError("ACCOUNT_NOT_FOUND", "Account not found.", "", model.ErrNotFound)
		}
		logger.Error("Error finding account by ID", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}
	return account, nil
}

func (s *accountService) GetAccountResponse(ctx context.Context, accountID uuid.UUID) (*model.AccountResponse, error) {
	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return model.NewAccountResponse(account, s.isAdminAccount(account)), nil
}

func (s *accountService) IsAdmin(ctx context.Context, accountID uuid.UUID) (bool, error) {
	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return false, err
	}
	return s.isAdminAccount(account), nil
}

func (s *accountService) isAdminAccount(a *model.Account) bool {
	return a.IsAdmin || s.cfg.Admin.IsAdminEmail(a.Email)
}

func (s *accountService) Subscribe(ctx context.Context, accountID uuid.UUID) (*sse.Client, *sse.Message, error) {
	current, err := s.GetAccountResponse(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}
	client := s.hub.Subscribe(accountID)
	middleware.GetLogger(ctx).Info("Account change stream opened", "client_id", client.ID)
	return client, &sse.Message{
		Channel: sse.AccountChannel(accountID),
		Event:   sse.EventAccountUpdated,
		Data:    current,
	}, nil
}

func (s *accountService) Unsubscribe(client *sse.Client) {
	s.hub.CloseClient(client)
}
