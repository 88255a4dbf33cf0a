package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/zoezi/core/badge"
	"github.com/trezcool/zoezi/core/problem"
	"github.com/trezcool/zoezi/core/user"
)

type userApi struct {
	svc      user.Service
	probSvc  problem.Service
	badgeSvc badge.Service
}

func registerUserAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc user.Service, probSvc problem.Service, badgeSvc badge.Service) {
	api := userApi{
		svc:      svc,
		probSvc:  probSvc,
		badgeSvc: badgeSvc,
	}

	ug := g.Group("/user")
	ug.GET("/stats", api.stats, jwt)
	ug.GET("/profile/:userId", api.profile)
}

func (api *userApi) stats(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.svc)
	if err != nil {
		return err
	}

	solved, err := api.probSvc.SolvedCount(usr.ID)
	if err != nil {
		return errors.Wrap(err, "counting solved problems")
	}
	return ctx.JSON(http.StatusOK, api.svc.Stats(usr, solved))
}

func (api *userApi) profile(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		return errHttpNotFound
	}

	usr, err := api.svc.GetByID(id)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding user")
	}

	solved, err := api.probSvc.SolvedCount(usr.ID)
	if err != nil {
		return errors.Wrap(err, "counting solved problems")
	}
	earned, err := api.badgeSvc.QueryForUser(usr.ID)
	if err != nil {
		return errors.Wrap(err, "querying user badges")
	}

	prof := user.Profile{
		UserID:      usr.ID,
		Username:    usr.Username,
		XP:          usr.XP,
		Level:       usr.Level,
		SolvedCount: solved,
		Streak:      usr.Streak,
		Badges:      make([]user.EarnedRef, 0, len(earned)),
		JoinedAt:    usr.CreatedAt,
	}
	for _, ub := range earned {
		prof.Badges = append(prof.Badges, user.EarnedRef{Slug: ub.Slug, Name: ub.Name, EarnedAt: ub.EarnedAt})
	}
	return ctx.JSON(http.StatusOK, prof)
}
