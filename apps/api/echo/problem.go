package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/zoezi/core"
	"github.com/trezcool/zoezi/core/problem"
)

type problemApi struct {
	svc problem.Service
}

func registerProblemAPI(g *echo.Group, jwt, softJwt echo.MiddlewareFunc, svc problem.Service) {
	api := problemApi{svc: svc}

	pg := g.Group("/problems", softJwt)
	pg.GET("", api.query)
	pg.GET("/daily", api.daily)
	pg.GET("/:slug", api.retrieve)

	g.POST("/problems/:id/submit", api.submit, jwt)
	g.POST("/problems", api.create, jwt, adminMiddleware())
}

func (api *problemApi) query(ctx echo.Context) error {
	var filter problem.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}

	probs, err := api.svc.Query(filter, contextUserID(ctx))
	if err != nil {
		return errors.Wrap(err, "querying problems")
	}
	if probs == nil {
		probs = []problem.Problem{}
	}
	return ctx.JSON(http.StatusOK, probs)
}

func (api *problemApi) daily(ctx echo.Context) error {
	prob, err := api.svc.Daily(contextUserID(ctx))
	if err != nil {
		if errors.Cause(err) == problem.ErrNoDaily {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting daily problem")
	}
	return ctx.JSON(http.StatusOK, prob)
}

func (api *problemApi) retrieve(ctx echo.Context) error {
	prob, err := api.svc.GetBySlug(ctx.Param("slug"), contextUserID(ctx))
	if err != nil {
		if errors.Cause(err) == problem.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting problem")
	}
	return ctx.JSON(http.StatusOK, prob)
}

func (api *problemApi) create(ctx echo.Context) error {
	var data problem.NewProblem
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewProblem")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	prob, err := api.svc.Create(data)
	if err != nil {
		if _, ok := errors.Cause(err).(*core.ValidationError); ok {
			return err // duplicate slug surfaces as a field error
		}
		return errors.Wrap(err, "creating problem")
	}
	return ctx.JSON(http.StatusCreated, prob)
}

func (api *problemApi) submit(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}

	var data problem.NewSubmission
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubmission")
	}
	if err = data.Validate(); err != nil {
		return err
	}

	res, err := api.svc.Submit(ctx.Request().Context(), contextUserID(ctx), id, data)
	if err != nil {
		if errors.Cause(err) == problem.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "submitting solution")
	}
	return ctx.JSON(http.StatusOK, res)
}
