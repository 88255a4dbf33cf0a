package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/zoezi/core/hackathon"
)

type hackathonApi struct {
	svc hackathon.Service
}

func registerHackathonAPI(g *echo.Group, svc hackathon.Service) {
	api := hackathonApi{svc: svc}
	g.GET("/hackathons", api.query)
}

func (api *hackathonApi) query(ctx echo.Context) error {
	events, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying hackathons")
	}
	if events == nil {
		events = []hackathon.Hackathon{}
	}
	return ctx.JSON(http.StatusOK, events)
}
