package middleware

import (
	"net/http"
	"strings"

	"app/internal/token"

	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey      = "user_id"      // int64
	CtxIsSuperuserKey = "is_superuser" // bool
)

type messageResponse struct {
	Message string `json:"message"`
}

func messageJSON(msg string) messageResponse {
	return messageResponse{Message: msg}
}

// bearerAuth用のJWT検証ミドルウェア。
// ヘッダ無しは401、検証失敗（期限切れ含む）は403。
func AuthJWT(issuer *token.Issuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//Authorizationヘッダを取得
			authz := c.Request().Header.Get("Authorization")
			if authz == "" {
				return c.JSON(http.StatusUnauthorized, messageJSON("authorization header required"))
			}

			//Bearer形式か確認してtokenを抜く
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, messageJSON("authorization header required"))
			}
			rawToken := strings.TrimSpace(parts[1])
			if rawToken == "" {
				return c.JSON(http.StatusUnauthorized, messageJSON("authorization header required"))
			}

			//署名・expを検証してclaimsを取り出す
			claims, err := issuer.VerifyAccess(rawToken)
			if err != nil {
				return c.JSON(http.StatusForbidden, messageJSON("invalid or expired token"))
			}

			//contextへ保存
			c.Set(CtxUserIDKey, claims.UserID)
			c.Set(CtxIsSuperuserKey, claims.IsSuperuser)

			return next(c)
		}
	}
}
