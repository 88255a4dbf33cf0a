package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/zoezi/core/leaderboard"
)

type leaderboardApi struct {
	svc leaderboard.Service
}

func registerLeaderboardAPI(g *echo.Group, svc leaderboard.Service) {
	api := leaderboardApi{svc: svc}
	g.GET("/leaderboard", api.top)
}

func (api *leaderboardApi) top(ctx echo.Context) error {
	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))

	rows, err := api.svc.Top(limit)
	if err != nil {
		return errors.Wrap(err, "querying leaderboard")
	}
	if rows == nil {
		rows = []leaderboard.Row{}
	}
	return ctx.JSON(http.StatusOK, rows)
}
