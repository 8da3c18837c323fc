package handler

import (
	"errors"
	"net/http"

	"pos/internal/config"
	"pos/internal/middleware"
	"pos/internal/repository"
	auth "pos/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	registerUC *auth.RegisterOperatorUsecase // 担当者登録usecase
	loginUC    *auth.LoginUsecase            // ログインusecase
}

// DIコンストラクタ
func NewAuthHandler(
	registerUC *auth.RegisterOperatorUsecase,
	loginUC *auth.LoginUsecase,
) *AuthHandler {
	return &AuthHandler{
		registerUC: registerUC,
		loginUC:    loginUC,
	}
}

// /auth/login のリクエストボディ。
type loginRequest struct {
	OperatorCode string `json:"operator_code"`
	PIN          string `json:"pin"`
}

// /operators のリクエストボディ。
type registerOperatorRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
	PIN  string `json:"pin"`
}

// /auth/login は公開、担当者の追加はログイン済みの担当者だけ
func (h *AuthHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, operators repository.OperatorRepository) {
	e.POST("/auth/login", h.login)

	g := e.Group("/operators")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.OperatorActiveGuard(operators))
	g.POST("", h.registerOperator)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{
		OperatorCode: req.OperatorCode,
		PIN:          req.PIN,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		case errors.Is(err, auth.ErrOperatorInactive):
			return c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
		default:
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		}
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) registerOperator(c echo.Context) error {
	if _, ok := getOperatorIDFromContext(c); !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req registerOperatorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.registerUC.Execute(c.Request().Context(), auth.RegisterOperatorInput{
		Code: req.Code,
		Name: req.Name,
		PIN:  req.PIN,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidOperatorCode), errors.Is(err, auth.ErrInvalidPIN):
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, auth.ErrOperatorCodeExists):
			return c.JSON(http.StatusConflict, ErrorResponse{Error: "conflict"})
		default:
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		}
	}

	return c.JSON(http.StatusCreated, out.Operator)
}
