package web

import (
	"context"

	"github.com/acadeval/report-server/internal/dataset"
	"github.com/acadeval/report-server/internal/metrics"
	"github.com/acadeval/report-server/internal/report"
	"github.com/acadeval/report-server/internal/repository/models"
	"github.com/acadeval/report-server/internal/session"
)

// AuthService is the slice of the auth service the handlers consume.
type AuthService interface {
	Login(ctx context.Context, username, password string) (models.UserAccount, error)
	CreateUser(ctx context.Context, username, password, role string) error
	ListUsers(ctx context.Context) ([]models.UserAccount, error)
	ChangePassword(ctx context.Context, username, newPassword string) error
	ChangeRole(ctx context.Context, username, role string) error
	RemoveUser(ctx context.Context, username string) error
}

// SessionStore opens, resolves and ends login sessions.
type SessionStore interface {
	Create(ctx context.Context, account models.UserAccount) (session.Session, error)
	Lookup(ctx context.Context, token string) (session.Session, error)
	Destroy(ctx context.Context, token string) error
}

// SheetLoader fetches a remote sheet into an evaluation table.
type SheetLoader interface {
	FromSheetURL(ctx context.Context, sheetURL string) (*dataset.EvaluationTable, error)
}

// ChartRenderer turns one summary into a chart image.
type ChartRenderer interface {
	Donut(summary metrics.QuestionSummary) ([]byte, error)
}

// ReportGenerator composes and rasterizes the final document.
type ReportGenerator interface {
	Generate(ctx context.Context, doc report.Document) ([]byte, error)
}
