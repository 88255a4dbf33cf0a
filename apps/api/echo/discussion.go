package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/zoezi/core/discussion"
)

type discussionApi struct {
	svc discussion.Service
}

func registerDiscussionAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc discussion.Service) {
	api := discussionApi{svc: svc}

	dg := g.Group("/discussions")
	dg.GET("", api.query)
	dg.GET("/:id", api.retrieve)
	dg.POST("", api.create, jwt)
	dg.POST("/:id/answers", api.answer, jwt)
	dg.POST("/:id/vote", api.vote, jwt)
}

func (api *discussionApi) query(ctx echo.Context) error {
	ds, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying discussions")
	}
	if ds == nil {
		ds = []discussion.Discussion{}
	}
	return ctx.JSON(http.StatusOK, ds)
}

func (api *discussionApi) retrieve(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}

	d, err := api.svc.GetByID(id)
	if err != nil {
		if errors.Cause(err) == discussion.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting discussion")
	}
	if d.Answers == nil {
		d.Answers = []discussion.Answer{}
	}
	return ctx.JSON(http.StatusOK, d)
}

func (api *discussionApi) create(ctx echo.Context) error {
	var data discussion.NewDiscussion
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewDiscussion")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	d, err := api.svc.Create(contextUserID(ctx), data)
	if err != nil {
		return errors.Wrap(err, "creating discussion")
	}
	return ctx.JSON(http.StatusCreated, d)
}

func (api *discussionApi) answer(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}

	var data discussion.NewAnswer
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAnswer")
	}
	if err = data.Validate(); err != nil {
		return err
	}

	res, err := api.svc.Answer(id, contextUserID(ctx), data)
	if err != nil {
		if errors.Cause(err) == discussion.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "posting answer")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *discussionApi) vote(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}

	var data discussion.Vote
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Vote")
	}
	if err = data.Validate(); err != nil {
		return err
	}

	res, err := api.svc.Vote(id, contextUserID(ctx), data)
	if err != nil {
		if errors.Cause(err) == discussion.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "voting")
	}
	return ctx.JSON(http.StatusOK, res)
}
