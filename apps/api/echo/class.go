package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/asistencia/core/register"
	"github.com/trezcool/asistencia/views"
)

type classApi struct {
	svc *register.Service
}

func registerClassAPI(g *echo.Group, session echo.MiddlewareFunc, svc *register.Service) {
	api := classApi{svc: svc}

	cg := g.Group("/classes", session)
	cg.GET("", api.query)
	cg.POST("", api.create)
	cg.PUT("/current", api.selectCurrent)
}

func (api *classApi) query(ctx echo.Context) error {
	var opts []views.ClassOption
	api.svc.Read(func(st *register.State) { opts = views.ClassOptions(st) })
	return ctx.JSON(http.StatusOK, opts)
}

// create answers 200 with created=false when a field is missing; nothing is stored then.
func (api *classApi) create(ctx echo.Context) error {
	var data register.NewClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClass")
	}
	cls, created, err := api.svc.CreateClass(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating class")
	}
	if !created {
		return ctx.JSON(http.StatusOK, CreateClassResponse{})
	}
	return ctx.JSON(http.StatusCreated, CreateClassResponse{Class: cls, Created: true})
}

func (api *classApi) selectCurrent(ctx echo.Context) error {
	var data SelectClassRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SelectClassRequest")
	}
	if err := api.svc.SelectClass(ctx.Request().Context(), data.ID); err != nil {
		return errors.Wrap(err, "selecting class")
	}
	return api.query(ctx)
}
