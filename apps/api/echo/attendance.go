package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/asistencia/core/register"
	"github.com/trezcool/asistencia/views"
)

type attendanceApi struct {
	svc *register.Service
}

func registerAttendanceAPI(g *echo.Group, session echo.MiddlewareFunc, svc *register.Service) {
	api := attendanceApi{svc: svc}

	ag := g.Group("/attendance", session)
	ag.GET("/:date", api.page)
	ag.PUT("/:date/:studentID", api.mark)
	ag.POST("/:date/all", api.markAll)
	ag.DELETE("/:date", api.clearDay)

	g.GET("/dates", api.dates, session)
	g.GET("/summary", api.summary, session)
	g.GET("/term", api.term, session)
	g.PUT("/term", api.setTerm, session)
}

// page is the whole main screen for one date.
func (api *attendanceApi) page(ctx echo.Context) error {
	date := ctx.Param("date")
	if err := dateParam(date); err != nil {
		return err
	}
	var page views.Page
	api.svc.Read(func(st *register.State) { page = views.Build(st, date) })
	return ctx.JSON(http.StatusOK, page)
}

func (api *attendanceApi) mark(ctx echo.Context) error {
	var data MarkRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MarkRequest")
	}
	rec, err := api.svc.Mark(ctx.Request().Context(), register.Mark{
		Date:      ctx.Param("date"),
		StudentID: ctx.Param("studentID"),
		Status:    data.Status,
	})
	if err != nil {
		return errors.Wrap(err, "marking student")
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *attendanceApi) markAll(ctx echo.Context) error {
	n, err := api.svc.MarkAllPresent(ctx.Request().Context(), ctx.Param("date"))
	if err != nil {
		return errors.Wrap(err, "marking all present")
	}
	return ctx.JSON(http.StatusOK, MarkAllResponse{Marked: n})
}

func (api *attendanceApi) clearDay(ctx echo.Context) error {
	cleared, err := api.svc.ClearDay(ctx.Request().Context(), ctx.Param("date"))
	if err != nil {
		return errors.Wrap(err, "clearing day")
	}
	return ctx.JSON(http.StatusOK, ClearDayResponse{Cleared: cleared})
}

func (api *attendanceApi) dates(ctx echo.Context) error {
	resp := DatesResponse{Dates: []views.DateChip{}}
	var err error
	api.svc.Read(func(st *register.State) {
		cls, ok := st.CurrentClass()
		if !ok {
			err = register.ErrNoClass
			return
		}
		resp.Dates = views.DateChips(st, cls.ID, ctx.QueryParam("active"))
	})
	if err != nil {
		return err
	}
	if len(resp.Dates) == 0 {
		resp.Empty = views.MsgNoDates
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *attendanceApi) summary(ctx echo.Context) error {
	resp := SummaryResponse{Summary: []views.SummaryRow{}}
	api.svc.Read(func(st *register.State) {
		cls, ok := st.CurrentClass()
		if !ok {
			resp.Empty = views.MsgNoSummary
			return
		}
		resp.Summary = views.SummaryRows(st, cls.ID)
	})
	if resp.Empty == "" && len(resp.Summary) == 0 {
		resp.Empty = views.MsgEmptySummary
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *attendanceApi) term(ctx echo.Context) error {
	var term register.Term
	api.svc.Read(func(st *register.State) { term = st.Term() })
	return ctx.JSON(http.StatusOK, term)
}

func (api *attendanceApi) setTerm(ctx echo.Context) error {
	var data register.Term
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Term")
	}
	if err := api.svc.SetTerm(ctx.Request().Context(), data); err != nil {
		return errors.Wrap(err, "setting term")
	}
	return api.term(ctx)
}
