package echoapi

import (
	"net/http"
	"strconv"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studyplanner/core/activity"
)

type (
	activityApi struct {
		schedule   *activity.Schedule
		validate   *validator.Validate
		translator ut.Translator
	}

	StatusRequest struct {
		Status string `json:"status"`
	}

	ProgressRequest struct {
		Progress int `json:"progress"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}
)

func registerActivityAPI(g *echo.Group, deps *Deps) {
	api := activityApi{
		schedule:   deps.Schedule,
		validate:   deps.Validate,
		translator: deps.Translator,
	}

	ag := g.Group("/activities")
	ag.GET("", api.query)
	ag.POST("", api.create)
	ag.DELETE("", api.destroyAll)

	// detail endpoints
	ag.GET("/:id", api.retrieve)
	ag.PUT("/:id", api.update)
	ag.DELETE("/:id", api.destroy)
	ag.PATCH("/:id/status", api.setStatus)
	ag.PATCH("/:id/progress", api.setProgress)
}

func getParamID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id < 1 {
		return 0, errInvalidID
	}
	return id, nil
}

func (api *activityApi) bind(ctx echo.Context) (activity.Activity, error) {
	var data activity.NewActivity
	if err := ctx.Bind(&data); err != nil {
		return activity.Activity{}, errors.Wrap(err, "binding to NewActivity")
	}
	if err := data.Validate(api.validate); err != nil {
		return activity.Activity{}, err
	}
	return data.Build()
}

// Handlers

func (api *activityApi) query(ctx echo.Context) error {
	var filter ActivityFilter
	if err := filter.Bind(ctx); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.schedule.Filter(filter.Predicate()))
}

func (api *activityApi) create(ctx echo.Context) error {
	a, err := api.bind(ctx)
	if err != nil {
		return err
	}
	a, err = api.schedule.Add(ctx.Request().Context(), &a)
	if err != nil {
		return errors.Wrap(err, "adding activity")
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *activityApi) retrieve(ctx echo.Context) error {
	id, err := getParamID(ctx)
	if err != nil {
		return err
	}
	a, err := api.schedule.Get(id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *activityApi) update(ctx echo.Context) error {
	id, err := getParamID(ctx)
	if err != nil {
		return err
	}
	if _, err = api.schedule.Get(id); err != nil {
		return err
	}
	a, err := api.bind(ctx)
	if err != nil {
		return err
	}
	a, err = api.schedule.Edit(ctx.Request().Context(), id, &a)
	if err != nil {
		return errors.Wrap(err, "editing activity")
	}
	return ctx.JSON(http.StatusOK, a)
}

// setStatus ignores unknown statuses and answers with the activity as it is.
func (api *activityApi) setStatus(ctx echo.Context) error {
	id, err := getParamID(ctx)
	if err != nil {
		return err
	}
	var data StatusRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StatusRequest")
	}

	st, ok := activity.ParseStatus(data.Status)
	if !ok {
		st = activity.Status(data.Status)
	}
	if err = api.schedule.UpdateStatus(ctx.Request().Context(), id, st); err != nil {
		return errors.Wrap(err, "updating status")
	}
	return api.retrieve(ctx)
}

// setProgress ignores values outside [0, 100] and answers with the activity as it is.
func (api *activityApi) setProgress(ctx echo.Context) error {
	id, err := getParamID(ctx)
	if err != nil {
		return err
	}
	var data ProgressRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ProgressRequest")
	}
	if err = api.schedule.UpdateProgress(ctx.Request().Context(), id, data.Progress); err != nil {
		return errors.Wrap(err, "updating progress")
	}
	return api.retrieve(ctx)
}

func (api *activityApi) destroy(ctx echo.Context) error {
	id, err := getParamID(ctx)
	if err != nil {
		return err
	}
	if err = api.schedule.Remove(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "removing activity")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *activityApi) destroyAll(ctx echo.Context) error {
	if err := api.schedule.RemoveAll(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "removing activities")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "all activities removed"})
}
