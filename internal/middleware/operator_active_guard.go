package middleware

import (
	"net/http"

	"pos/internal/repository"

	"github.com/labstack/echo/v4"
)

// トークンが有効でも、停止された担当者は通さない。
func OperatorActiveGuard(operators repository.OperatorRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//AuthJWTが入れたoperator_idを取得する
			operatorID, ok := c.Get(CtxOperatorIDKey).(int64)
			if !ok || operatorID <= 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//DBから最新の担当者を取得する
			op, err := operators.FindByID(c.Request().Context(), operatorID)
			if err != nil || op == nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//コードが変わっていたら別人のトークン扱い
			code, _ := c.Get(CtxOperatorCodeKey).(string)
			if op.Code != code {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			if !op.IsActive {
				return c.JSON(http.StatusForbidden, errorJSON("forbidden"))
			}

			return next(c)
		}
	}
}
