// cmd/admin/cmd_test.go
package main

import (
	"bytes"
	"testing"

	"course_portal/internal/model"
	"course_portal/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*commandLine, *mocks.AdminService, *bytes.Buffer) {
	svc := mocks.NewAdminService(t)
	out := &bytes.Buffer{}
	return &commandLine{svc: svc, out: out}, svc, out
}

type cliTest struct {
	name    string
	args    []string // without program name
	wantErr error
}

func runCLI(t *testing.T, cli *commandLine, args []string) error {
	t.Helper()
	return cli.run(append([]string{"admin"}, args...))
}

func Test_commandLine_usage(t *testing.T) {
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "grant: no args", args: []string{"grant"}, wantErr: errHelp},
		{name: "grant: email but no courses", args: []string{"grant", "-email", "a@example.com"}, wantErr: errHelp},
		{name: "grant: blank courses", args: []string{"grant", "-email", "a@example.com", "-courses", " , "}, wantErr: errHelp},
		{name: "grant: unknown flag", args: []string{"grant", "-lol"}, wantErr: errHelp},
		{name: "promote: no args", args: []string{"promote"}, wantErr: errHelp},
		{name: "adduser: no email", args: []string{"adduser", "-name", "Sara"}, wantErr: errHelp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// サービスは呼ばれない (mock の期待値なし)
			cli, _, out := setup(t)
			err := runCLI(t, cli, tt.args)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, out.String(), "Usage")
		})
	}
}

func Test_commandLine_grant(t *testing.T) {
	accountID := uuid.New()
	account := &model.Account{AccountID: accountID, Email: "learner@example.com"}

	t.Run("正常系: メールで引いて付与する", func(t *testing.T) {
		cli, svc, out := setup(t)
		svc.On("FindByEmail", mock.Anything, "learner@example.com").Return(account, nil).Once()
		svc.On("GrantAccess", mock.Anything, accountID, []string{"bundle", "image-editing"}).Return(&model.AccountResponse{
			AccountID:     accountID,
			Email:         "learner@example.com",
			CourseAccess:  []model.CourseID{"web", "mobile", "bundle", "image-editing"},
			PaymentStatus: model.PaymentPaid,
		}, nil).Once()

		err := runCLI(t, cli, []string{"grant", "-email", "learner@example.com", "-courses", "bundle, image-editing"})

		require.NoError(t, err)
		assert.Contains(t, out.String(), "granted learner@example.com")
		assert.Contains(t, out.String(), "status=paid")
	})

	t.Run("異常系: アカウントが無い", func(t *testing.T) {
		cli, svc, _ := setup(t)
		svc.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, model.ErrNotFound).Once()

		err := runCLI(t, cli, []string{"grant", "-email", "ghost@example.com", "-courses", "web"})

		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("異常系: 不明なコースはサービスのエラーを返す", func(t *testing.T) {
		cli, svc, _ := setup(t)
		svc.On("FindByEmail", mock.Anything, "learner@example.com").Return(account, nil).Once()
		appErr := model.NewAppError("INVALID_COURSE", "unknown course: lol", "course_ids", model.ErrInvalidInput)
		svc.On("GrantAccess", mock.Anything, accountID, []string{"lol"}).Return(nil, appErr).Once()

		err := runCLI(t, cli, []string{"grant", "-email", "learner@example.com", "-courses", "lol"})

		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})
}

func Test_commandLine_promote(t *testing.T) {
	cli, svc, out := setup(t)
	accountID := uuid.New()
	svc.On("FindByEmail", mock.Anything, "staff@example.com").Return(&model.Account{AccountID: accountID, Email: "staff@example.com"}, nil).Once()
	svc.On("Promote", mock.Anything, accountID).Return(nil).Once()

	require.NoError(t, runCLI(t, cli, []string{"promote", "-email", "staff@example.com"}))
	assert.Contains(t, out.String(), "staff@example.com is now an admin")
}

func Test_commandLine_list(t *testing.T) {
	cli, svc, out := setup(t)
	svc.On("ListAccounts", mock.Anything, model.AccountFilter{Status: model.PaymentPending, Query: "sara"}).Return([]*model.AccountResponse{
		{Email: "sara@example.com", Name: "Sara", PaymentStatus: model.PaymentPending, CourseAccess: []model.CourseID{}},
	}, nil).Once()

	require.NoError(t, runCLI(t, cli, []string{"list", "-status", "PENDING", "-q", "sara"}))

	assert.Contains(t, out.String(), "EMAIL")
	assert.Contains(t, out.String(), "sara@example.com")
}

func Test_commandLine_stats(t *testing.T) {
	cli, svc, out := setup(t)
	svc.On("Stats", mock.Anything).Return(&model.AdminStats{Total: 3, Pending: 1, Paid: 2, Revenue: 450, Currency: "JOD"}, nil).Once()

	require.NoError(t, runCLI(t, cli, []string{"stats"}))
	assert.Equal(t, "total=3 pending=1 paid=2 revenue=450 JOD\n", out.String())
}

func Test_commandLine_adduser(t *testing.T) {
	origRead := readPasswordFunc
	t.Cleanup(func() { readPasswordFunc = origRead })

	t.Run("異常系: パスワード未入力", func(t *testing.T) {
		cli, _, _ := setup(t)
		readPasswordFunc = func(fd int) ([]byte, error) { return nil, nil }

		err := runCLI(t, cli, []string{"adduser", "-name", "Owner", "-email", "owner@example.com"})
		assert.ErrorIs(t, err, errHelp)
	})

	t.Run("正常系: 管理者として作成", func(t *testing.T) {
		cli, svc, out := setup(t)
		readPasswordFunc = func(fd int) ([]byte, error) { return []byte("password123"), nil }
		svc.On("CreateAccount", mock.Anything, "Owner", "owner@example.com", "password123", true).
			Return(&model.Account{AccountID: uuid.New(), Email: "owner@example.com", IsAdmin: true}, nil).Once()

		err := runCLI(t, cli, []string{"adduser", "-name", "Owner", "-email", "owner@example.com", "-admin"})

		require.NoError(t, err)
		assert.Contains(t, out.String(), "created owner@example.com")
		assert.Contains(t, out.String(), "admin=true")
	})

	t.Run("異常系: 重複メール", func(t *testing.T) {
		cli, svc, _ := setup(t)
		readPasswordFunc = func(fd int) ([]byte, error) { return []byte("password123"), nil }
		svc.On("CreateAccount", mock.Anything, "Owner", "owner@example.com", "password123", false).
			Return(nil, model.NewAppError("DUPLICATE_EMAIL", "email already registered.", "email", model.ErrConflict)).Once()

		err := runCLI(t, cli, []string{"adduser", "-name", "Owner", "-email", "owner@example.com"})
		assert.ErrorIs(t, err, model.ErrConflict)
	})
}
