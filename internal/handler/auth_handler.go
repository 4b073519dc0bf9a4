package handler

import (
	"errors"
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type MessageResponse struct {
	Message string `json:"message"`
}

func messageJSON(msg string) MessageResponse {
	return MessageResponse{Message: msg}
}

// /login /logout /token の認証API
type AuthHandler struct {
	uc *usecase.AuthUsecase
}

// DI
func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// 認証ルートを登録（すべてtokenなしで叩ける）
func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/login", h.Login)
	e.POST("/logout", h.Logout)
	e.POST("/token", h.Refresh)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}

// LoginはPOST /loginのハンドラ
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageJSON("invalid request body"))
	}

	pair, err := h.uc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, messageJSON("Incorrect email or password"))
		}
		return c.JSON(http.StatusInternalServerError, messageJSON("Error logging in"))
	}

	return c.JSON(http.StatusOK, pair)
}

// LogoutはPOST /logoutのハンドラ。tokenが無くても成功を返す
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageJSON("invalid request body"))
	}

	if err := h.uc.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		return c.JSON(http.StatusInternalServerError, messageJSON("Error logging out"))
	}

	return c.JSON(http.StatusOK, messageJSON("The user has been logged out successfully."))
}

// RefreshはPOST /tokenのハンドラ（access token再発行）
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageJSON("invalid request body"))
	}

	accessToken, err := h.uc.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMissingToken):
			return c.JSON(http.StatusUnauthorized, messageJSON("Refresh token required"))
		case errors.Is(err, usecase.ErrTokenNotFound):
			return c.JSON(http.StatusForbidden, messageJSON("Refresh token not found"))
		case errors.Is(err, usecase.ErrTokenExpired):
			return c.JSON(http.StatusForbidden, messageJSON("Refresh token expired"))
		case errors.Is(err, usecase.ErrInvalidToken):
			return c.JSON(http.StatusForbidden, messageJSON("Invalid refresh token"))
		case errors.Is(err, usecase.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, messageJSON("User not found"))
		default:
			return c.JSON(http.StatusInternalServerError, messageJSON("Error validating refresh token"))
		}
	}

	return c.JSON(http.StatusOK, refreshResponse{AccessToken: accessToken})
}
