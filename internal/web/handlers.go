package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/acadeval/report-server/internal/dataset"
	"github.com/acadeval/report-server/internal/report"
	"github.com/acadeval/report-server/internal/repository/models"
	"github.com/acadeval/report-server/internal/service"
)

// Handlers owns the HTTP surface: login, report generation and user
// administration.
type Handlers struct {
	auth         AuthService
	sessions     SessionStore
	sheets       SheetLoader
	charts       ChartRenderer
	generator    ReportGenerator
	logger       *zap.Logger
	sessionTTL   time.Duration
	fetchTimeout time.Duration
}

// NewHandlers initializes the HTTP handlers.
func NewHandlers(
	auth AuthService,
	sessions SessionStore,
	sheets SheetLoader,
	charts ChartRenderer,
	generator ReportGenerator,
	logger *zap.Logger,
	sessionTTL, fetchTimeout time.Duration,
) *Handlers {
	if auth == nil {
		panic("nil AuthService provided to NewHandlers")
	}
	if sessions == nil {
		panic("nil SessionStore provided to NewHandlers")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		auth:         auth,
		sessions:     sessions,
		sheets:       sheets,
		charts:       charts,
		generator:    generator,
		logger:       logger.Named("web-handler"),
		sessionTTL:   sessionTTL,
		fetchTimeout: fetchTimeout,
	}
}

// Register attaches all routes to the router.
func (h *Handlers) Register(e *echo.Echo) {
	e.POST("/login", h.handleLogin)

	authed := e.Group("", h.RequireSession)
	authed.POST("/logout", h.handleLogout)
	authed.GET("/me", h.handleWhoAmI)
	authed.POST("/reports", h.handleGenerateReport)

	admin := authed.Group("/admin", h.RequireRole(models.RoleAdmin))
	admin.GET("/users", h.handleListUsers)
	admin.POST("/users", h.handleCreateUser)
	admin.PUT("/users/:username", h.handleUpdateUser)
	admin.DELETE("/users/:username", h.handleDeleteUser)
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (h *Handlers) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed login request")
	}

	account, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return h.mapError(c, "login", err)
	}

	sess, err := h.sessions.Create(c.Request().Context(), account)
	if err != nil {
		h.logger.Error("session create failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "could not open session")
	}

	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    sess.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(h.sessionTTL),
	})

	return c.JSON(http.StatusOK, map[string]string{
		"username": account.Username,
		"role":     account.Role,
	})
}

func (h *Handlers) handleLogout(c echo.Context) error {
	if cookie, err := c.Cookie(sessionCookieName); err == nil {
		if err := h.sessions.Destroy(c.Request().Context(), cookie.Value); err != nil {
			h.logger.Warn("session destroy failed", zap.Error(err))
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	return c.NoContent(http.StatusNoContent)
}

func (h *Handlers) handleWhoAmI(c echo.Context) error {
	sess, _ := CurrentSession(c)
	return c.JSON(http.StatusOK, map[string]string{
		"username": sess.Username,
		"role":     sess.Role,
	})
}

type createUserRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	Role     string `json:"role" form:"role"`
}

func (h *Handlers) handleCreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed user request")
	}

	if err := h.auth.CreateUser(c.Request().Context(), req.Username, req.Password, req.Role); err != nil {
		return h.mapError(c, "create user", err)
	}
	return c.NoContent(http.StatusCreated)
}

func (h *Handlers) handleListUsers(c echo.Context) error {
	users, err := h.auth.ListUsers(c.Request().Context())
	if err != nil {
		return h.mapError(c, "list users", err)
	}

	type userView struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, userView{Username: u.Username, Role: u.Role})
	}
	return c.JSON(http.StatusOK, views)
}

type updateUserRequest struct {
	Password string `json:"password" form:"password"`
	Role     string `json:"role" form:"role"`
}

func (h *Handlers) handleUpdateUser(c echo.Context) error {
	username := c.Param("username")

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed user request")
	}
	if req.Password == "" && req.Role == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "nothing to update")
	}

	ctx := c.Request().Context()
	if req.Password != "" {
		if err := h.auth.ChangePassword(ctx, username, req.Password); err != nil {
			return h.mapError(c, "change password", err)
		}
	}
	if req.Role != "" {
		if err := h.auth.ChangeRole(ctx, username, req.Role); err != nil {
			return h.mapError(c, "change role", err)
		}
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handlers) handleDeleteUser(c echo.Context) error {
	username := c.Param("username")

	if sess, ok := CurrentSession(c); ok && sess.Username == username {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot delete your own account")
	}

	if err := h.auth.RemoveUser(c.Request().Context(), username); err != nil {
		return h.mapError(c, "delete user", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// mapError translates pipeline and service sentinels into HTTP failures
// with messages a person at the form can act on.
func (h *Handlers) mapError(c echo.Context, op string, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
	case errors.Is(err, service.ErrUserExists):
		return echo.NewHTTPError(http.StatusConflict, "username already exists")
	case errors.Is(err, service.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	case errors.Is(err, service.ErrInvalidRole):
		return echo.NewHTTPError(http.StatusBadRequest, "role must be admin or user")
	case errors.Is(err, dataset.ErrBadSheetURL):
		return echo.NewHTTPError(http.StatusBadRequest, "could not find the sheet ID in the link")
	case errors.Is(err, dataset.ErrFormat):
		return echo.NewHTTPError(http.StatusBadRequest, "the table is malformed; check the column counts")
	case errors.Is(err, dataset.ErrEmptyData):
		return echo.NewHTTPError(http.StatusBadRequest, "the table contains no responses")
	case errors.Is(err, dataset.ErrSourceUnavailable):
		return echo.NewHTTPError(http.StatusBadGateway, "could not load the sheet; ensure sharing is set to anyone with the link")
	case errors.Is(err, report.ErrMissingChart):
		h.logger.Error("chart consistency check failed", zap.String("op", op), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "report assembly failed")
	case errors.Is(err, report.ErrEngineUnavailable):
		h.logger.Error("render engine unavailable", zap.String("op", op), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "PDF engine is not available, try again later")
	default:
		h.logger.Error("unexpected error", zap.String("op", op), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, op+" failed")
	}
}
