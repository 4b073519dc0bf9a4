package handler

import (
	"errors"
	"net/http"
	"strconv"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /users のCRUD API
type UserHandler struct {
	uc *usecase.UserUsecase
}

// DI
func NewUserHandler(uc *usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// 検証エラーを {errors: [...]} で返す
type validationErrorResponse struct {
	Errors usecase.ValidationErrors `json:"errors"`
}

// ユーザールートを登録。
// 作成はtoken不要、一覧は認証のみ、更新・削除はsuperuser限定。
func (h *UserHandler) RegisterRoutes(e *echo.Echo, authJWT echo.MiddlewareFunc, superuser echo.MiddlewareFunc) {
	e.POST("/users", h.Create)
	e.GET("/users", h.List, authJWT)
	e.PUT("/users/:id", h.Update, authJWT, superuser)
	e.DELETE("/users/:id", h.Delete, authJWT, superuser)
}

type createUserRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	IsSuperuser bool   `json:"is_superuser"`
}

type updateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// CreateはPOST /usersのハンドラ
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageJSON("invalid request body"))
	}

	dto, err := h.uc.Create(c.Request().Context(), usecase.CreateUserInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		IsSuperuser: req.IsSuperuser,
	})
	if err != nil {
		var verrs usecase.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			return c.JSON(http.StatusBadRequest, validationErrorResponse{Errors: verrs})
		case errors.Is(err, usecase.ErrDuplicateEmail):
			return c.JSON(http.StatusConflict, messageJSON("Email already exists"))
		default:
			return c.JSON(http.StatusInternalServerError, messageJSON("Error adding user"))
		}
	}

	return c.JSON(http.StatusCreated, dto)
}

// ListはGET /users?page=&limit= のハンドラ
func (h *UserHandler) List(c echo.Context) error {
	//不正な値はデフォルトに落とす（page=1, limit=10）
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	out, err := h.uc.List(c.Request().Context(), page, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, messageJSON("Error retrieving users"))
	}

	return c.JSON(http.StatusOK, out)
}

// UpdateはPUT /users/:idのハンドラ（部分更新）
func (h *UserHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, messageJSON("invalid user id"))
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageJSON("invalid request body"))
	}

	uerr := h.uc.Update(c.Request().Context(), id, usecase.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if uerr != nil {
		var verrs usecase.ValidationErrors
		switch {
		case errors.As(uerr, &verrs):
			return c.JSON(http.StatusBadRequest, validationErrorResponse{Errors: verrs})
		case errors.Is(uerr, usecase.ErrNotFound):
			return c.JSON(http.StatusNotFound, messageJSON("User not found"))
		case errors.Is(uerr, usecase.ErrDuplicateEmail):
			return c.JSON(http.StatusConflict, messageJSON("Email already exists"))
		default:
			return c.JSON(http.StatusInternalServerError, messageJSON("Error updating user"))
		}
	}

	return c.JSON(http.StatusOK, messageJSON("User updated successfully"))
}

// DeleteはDELETE /users/:idのハンドラ
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, messageJSON("invalid user id"))
	}

	if uerr := h.uc.Delete(c.Request().Context(), id); uerr != nil {
		if errors.Is(uerr, usecase.ErrNotFound) {
			return c.JSON(http.StatusNotFound, messageJSON("User not found"))
		}
		return c.JSON(http.StatusInternalServerError, messageJSON("Error deleting user"))
	}

	return c.JSON(http.StatusOK, messageJSON("User deleted successfully"))
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
