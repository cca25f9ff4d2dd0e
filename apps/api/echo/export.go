package echoapi

import (
	"bytes"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/asistencia/core"
	"github.com/trezcool/asistencia/core/register"
	"github.com/trezcool/asistencia/export"
	"github.com/trezcool/asistencia/views"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type exportApi struct {
	svc *register.Service
}

func registerExportAPI(app *echo.Echo, g *echo.Group, session echo.MiddlewareFunc, svc *register.Service) {
	api := exportApi{svc: svc}

	g.GET("/export/:file", api.export, session)
	app.GET("/print/:date", api.print, session)
}

func (api *exportApi) sheet(date string) (export.Sheet, error) {
	var (
		sh  export.Sheet
		err error
	)
	api.svc.Read(func(st *register.State) { sh, err = export.NewSheet(st, date) })
	return sh, err
}

// export serves /export/<date>.csv and /export/<date>.xlsx as downloads.
func (api *exportApi) export(ctx echo.Context) error {
	file := ctx.Param("file")
	ext := strings.TrimPrefix(path.Ext(file), ".")
	date := strings.TrimSuffix(file, path.Ext(file))
	if ext != "csv" && ext != "xlsx" {
		return errHttpNotFound
	}

	sh, err := api.sheet(date)
	if err != nil {
		return errors.Wrap(err, "collecting sheet")
	}
	attachment := mime.FormatMediaType("attachment", map[string]string{"filename": export.Filename(sh, ext)})
	ctx.Response().Header().Set(echo.HeaderContentDisposition, attachment)

	if ext == "csv" {
		return ctx.Blob(http.StatusOK, "text/csv; charset=utf-8", []byte(export.CSV(sh)))
	}
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, sh); err != nil {
		return errors.Wrap(err, "writing workbook")
	}
	return ctx.Blob(http.StatusOK, mimeXLSX, buf.Bytes())
}

// print renders the printable page; the browser opens its print dialog on load.
func (api *exportApi) print(ctx echo.Context) error {
	date := ctx.Param("date")
	if _, err := api.sheet(date); err != nil {
		return errors.Wrap(err, "collecting sheet")
	}
	data := views.PrintData{
		Institution: core.Conf.GetString("institution"),
		Faculty:     core.Conf.GetString("faculty"),
	}
	api.svc.Read(func(st *register.State) { data.Page = views.Build(st, date) })

	var buf bytes.Buffer
	if err := views.RenderPrint(&buf, data); err != nil {
		return errors.Wrap(err, "rendering print page")
	}
	return ctx.HTMLBlob(http.StatusOK, buf.Bytes())
}
