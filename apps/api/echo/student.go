package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/asistencia/core/register"
	"github.com/trezcool/asistencia/export"
)

type studentApi struct {
	svc *register.Service
}

func registerStudentAPI(g *echo.Group, session echo.MiddlewareFunc, svc *register.Service) {
	api := studentApi{svc: svc}

	sg := g.Group("/students", session)
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.POST("/import", api.importRoster)

	// detail endpoints
	sg.PUT("/:id", api.update)
	sg.DELETE("/:id", api.destroy)
}

func (api *studentApi) query(ctx echo.Context) error {
	var (
		roster []register.Student
		err    error
	)
	api.svc.Read(func(st *register.State) {
		cls, ok := st.CurrentClass()
		if !ok {
			err = register.ErrNoClass
			return
		}
		roster = st.Roster(cls.ID)
	})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, roster)
}

func (api *studentApi) create(ctx echo.Context) error {
	var data register.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	stu, err := api.svc.AddStudent(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "adding student")
	}
	return ctx.JSON(http.StatusCreated, stu)
}

func (api *studentApi) update(ctx echo.Context) error {
	var data register.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	stu, err := api.svc.UpdateStudent(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, stu)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	if err := api.svc.DeleteStudent(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// importRoster reads the "file" form field as an XLSX roster.
func (api *studentApi) importRoster(ctx echo.Context) error {
	fh, err := ctx.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required").SetInternal(err)
	}
	f, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening uploaded roster")
	}
	defer f.Close()

	rows, err := export.ReadRoster(f)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable workbook").SetInternal(err)
	}
	res, err := api.svc.ImportStudents(ctx.Request().Context(), rows, export.RosterFirstRow)
	if err != nil {
		return errors.Wrap(err, "importing students")
	}
	return ctx.JSON(http.StatusOK, res)
}
