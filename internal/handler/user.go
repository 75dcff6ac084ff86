package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jaeyun/matzip-map/internal/config"
	"github.com/jaeyun/matzip-map/internal/repository"
	"github.com/jaeyun/matzip-map/internal/utils"
)

// UserHandler bundles dependencies for account endpoints.
type UserHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewUserHandler(cfg config.Config, u *repository.UserRepo) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: u}
}

type credentialsReq struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

// Register creates an account. Nicknames are unique; a duplicate gets 409.
func (h *UserHandler) Register(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Nickname = strings.TrimSpace(req.Nickname)
	if req.Nickname == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nickname/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Users.Create(ctx, req.Nickname, req.Password, h.Cfg.PasswordScheme, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrNicknameExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "nickname already taken"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	token, err := utils.NewAccessToken(h.Cfg.JWTSecret, id, req.Nickname, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"userId":   id,
		"nickname": req.Nickname,
		"token":    token.Token,
	})
}

// Login verifies credentials. Unknown nickname and bad password look
// identical to the caller: 401.
func (h *UserHandler) Login(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Nickname = strings.TrimSpace(req.Nickname)
	if req.Nickname == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nickname/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByNickname(ctx, req.Nickname)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid nickname or password"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password, u.Nickname) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid nickname or password"})
	}

	token, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Nickname, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"userId":   u.ID,
		"nickname": u.Nickname,
		"token":    token.Token,
	})
}

// Get serves GET /api/users/:nickname.
func (h *UserHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByNickname(ctx, c.Param("nickname"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": u.Public()})
}

// Me returns the account of the session token holder.
func (h *UserHandler) Me(c echo.Context) error {
	userID, ok := c.Get("user_id").(int64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": u.Public()})
}
