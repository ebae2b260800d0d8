package mocks

import (
	"context"
	"errors"

	"github.com/acadeval/report-server/internal/dataset"
	"github.com/acadeval/report-server/internal/metrics"
	"github.com/acadeval/report-server/internal/report"
	"github.com/acadeval/report-server/internal/repository/models"
	"github.com/acadeval/report-server/internal/session"
)

// MockAuthService is a function-field mock of the web.AuthService
// interface.
type MockAuthService struct {
	LoginFunc          func(ctx context.Context, username, password string) (models.UserAccount, error)
	CreateUserFunc     func(ctx context.Context, username, password, role string) error
	ListUsersFunc      func(ctx context.Context) ([]models.UserAccount, error)
	ChangePasswordFunc func(ctx context.Context, username, newPassword string) error
	ChangeRoleFunc     func(ctx context.Context, username, role string) error
	RemoveUserFunc     func(ctx context.Context, username string) error
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (models.UserAccount, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	return models.UserAccount{}, errors.New("LoginFunc not implemented")
}

func (m *MockAuthService) CreateUser(ctx context.Context, username, password, role string) error {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, username, password, role)
	}
	return errors.New("CreateUserFunc not implemented")
}

func (m *MockAuthService) ListUsers(ctx context.Context) ([]models.UserAccount, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx)
	}
	return nil, errors.New("ListUsersFunc not implemented")
}

func (m *MockAuthService) ChangePassword(ctx context.Context, username, newPassword string) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, username, newPassword)
	}
	return errors.New("ChangePasswordFunc not implemented")
}

func (m *MockAuthService) ChangeRole(ctx context.Context, username, role string) error {
	if m.ChangeRoleFunc != nil {
		return m.ChangeRoleFunc(ctx, username, role)
	}
	return errors.New("ChangeRoleFunc not implemented")
}

func (m *MockAuthService) RemoveUser(ctx context.Context, username string) error {
	if m.RemoveUserFunc != nil {
		return m.RemoveUserFunc(ctx, username)
	}
	return errors.New("RemoveUserFunc not implemented")
}

// MockSessionStore keeps sessions in a map so middleware tests can drive
// real cookie flows.
type MockSessionStore struct {
	CreateFunc  func(ctx context.Context, account models.UserAccount) (session.Session, error)
	LookupFunc  func(ctx context.Context, token string) (session.Session, error)
	DestroyFunc func(ctx context.Context, token string) error
}

func (m *MockSessionStore) Create(ctx context.Context, account models.UserAccount) (session.Session, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	return session.Session{}, errors.New("CreateFunc not implemented")
}

func (m *MockSessionStore) Lookup(ctx context.Context, token string) (session.Session, error) {
	if m.LookupFunc != nil {
		return m.LookupFunc(ctx, token)
	}
	return session.Session{}, errors.New("LookupFunc not implemented")
}

func (m *MockSessionStore) Destroy(ctx context.Context, token string) error {
	if m.DestroyFunc != nil {
		return m.DestroyFunc(ctx, token)
	}
	return errors.New("DestroyFunc not implemented")
}

// MockSheetLoader is a function-field mock of the web.SheetLoader
// interface.
type MockSheetLoader struct {
	FromSheetURLFunc func(ctx context.Context, sheetURL string) (*dataset.EvaluationTable, error)
}

func (m *MockSheetLoader) FromSheetURL(ctx context.Context, sheetURL string) (*dataset.EvaluationTable, error) {
	if m.FromSheetURLFunc != nil {
		return m.FromSheetURLFunc(ctx, sheetURL)
	}
	return nil, errors.New("FromSheetURLFunc not implemented")
}

// MockChartRenderer is a function-field mock of the web.ChartRenderer
// interface.
type MockChartRenderer struct {
	DonutFunc func(summary metrics.QuestionSummary) ([]byte, error)
}

func (m *MockChartRenderer) Donut(summary metrics.QuestionSummary) ([]byte, error) {
	if m.DonutFunc != nil {
		return m.DonutFunc(summary)
	}
	return []byte("png"), nil
}

// MockReportGenerator is a function-field mock of the
// web.ReportGenerator interface.
type MockReportGenerator struct {
	GenerateFunc func(ctx context.Context, doc report.Document) ([]byte, error)
}

func (m *MockReportGenerator) Generate(ctx context.Context, doc report.Document) ([]byte, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, doc)
	}
	return []byte("%PDF-mock"), nil
}
