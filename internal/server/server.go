package server

import (
	"app/internal/handler"
	"app/internal/middleware"
	"app/internal/token"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Newはechoインスタンスを組み立ててルートを登録する
func New(issuer *token.Issuer, authH *handler.AuthHandler, userH *handler.UserHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	//アクセスログとpanic回復
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	authJWT := middleware.AuthJWT(issuer)
	superuser := middleware.SuperuserGuard()

	authH.RegisterRoutes(e)
	userH.RegisterRoutes(e, authJWT, superuser)

	return e
}
