package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/asistencia/core/register"
	"github.com/trezcool/asistencia/views"
)

type sessionApi struct {
	svc *register.Service
}

func registerSessionAPI(g *echo.Group, session echo.MiddlewareFunc, svc *register.Service) {
	api := sessionApi{svc: svc}

	// un-authed endpoints
	g.GET("/teachers", api.teachers)
	g.POST("/teachers", api.registerTeacher)
	g.POST("/session", api.login)

	// authed endpoints
	g.GET("/session", api.current, session)
	g.DELETE("/session", api.logout, session)
}

func (api *sessionApi) teachers(ctx echo.Context) error {
	var names []string
	api.svc.Read(func(st *register.State) { names = views.TeacherNames(st) })
	resp := TeachersResponse{Teachers: names}
	if len(names) == 0 {
		resp.Empty = views.MsgNoTeachers
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *sessionApi) registerTeacher(ctx echo.Context) error {
	var data register.NewTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeacher")
	}
	t, err := api.svc.RegisterTeacher(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "registering teacher")
	}
	return ctx.JSON(http.StatusCreated, SessionResponse{ID: t.ID, Name: t.Name})
}

func (api *sessionApi) login(ctx echo.Context) error {
	var data register.Credentials
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}
	t, err := api.svc.Login(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "logging in")
	}
	return ctx.JSON(http.StatusOK, SessionResponse{ID: t.ID, Name: t.Name})
}

func (api *sessionApi) current(ctx echo.Context) error {
	t := contextTeacher(ctx)
	return ctx.JSON(http.StatusOK, SessionResponse{ID: t.ID, Name: t.Name})
}

func (api *sessionApi) logout(ctx echo.Context) error {
	if err := api.svc.Logout(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "logging out")
	}
	return ctx.NoContent(http.StatusNoContent)
}
