package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/zoezi/core/tutorial"
)

type tutorialApi struct {
	svc tutorial.Service
}

func registerTutorialAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc tutorial.Service) {
	api := tutorialApi{svc: svc}

	tg := g.Group("/tutorials")
	tg.GET("", api.query)
	tg.GET("/:slug", api.retrieve)

	g.POST("/lessons/:id/complete", api.completeLesson, jwt)
}

func (api *tutorialApi) query(ctx echo.Context) error {
	tuts, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying tutorials")
	}
	if tuts == nil {
		tuts = []tutorial.Tutorial{}
	}
	return ctx.JSON(http.StatusOK, tuts)
}

func (api *tutorialApi) retrieve(ctx echo.Context) error {
	tut, err := api.svc.GetBySlug(ctx.Param("slug"))
	if err != nil {
		if errors.Cause(err) == tutorial.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting tutorial")
	}
	if tut.Lessons == nil {
		tut.Lessons = []tutorial.Lesson{}
	}
	return ctx.JSON(http.StatusOK, tut)
}

func (api *tutorialApi) completeLesson(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}

	res, err := api.svc.CompleteLesson(contextUserID(ctx), id)
	if err != nil {
		if errors.Cause(err) == tutorial.ErrLessonNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "completing lesson")
	}
	return ctx.JSON(http.StatusOK, res)
}
