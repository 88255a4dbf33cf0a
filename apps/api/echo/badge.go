package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/zoezi/core/badge"
)

type badgeApi struct {
	svc badge.Service
}

func registerBadgeAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc badge.Service) {
	api := badgeApi{svc: svc}

	g.GET("/badges", api.query)
	g.GET("/user/badges", api.queryMine, jwt)
}

func (api *badgeApi) query(ctx echo.Context) error {
	badges, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying badges")
	}
	if badges == nil {
		badges = []badge.Badge{}
	}
	return ctx.JSON(http.StatusOK, badges)
}

func (api *badgeApi) queryMine(ctx echo.Context) error {
	earned, err := api.svc.QueryForUser(contextUserID(ctx))
	if err != nil {
		return errors.Wrap(err, "querying user badges")
	}
	if earned == nil {
		earned = []badge.UserBadge{}
	}
	return ctx.JSON(http.StatusOK, earned)
}
