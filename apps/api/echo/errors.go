package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/asistencia/core"
	"github.com/trezcool/asistencia/core/register"
	"github.com/trezcool/asistencia/export"
)

var (
	errUnauthorized = echo.NewHTTPError(http.StatusUnauthorized, "no teacher logged in")
	errHttpNotFound = echo.NewHTTPError(http.StatusNotFound, "not found")
)

// sentinelCodes maps domain errors onto HTTP status codes.
var sentinelCodes = []struct {
	err  error
	code int
}{
	{register.ErrNotLoggedIn, http.StatusUnauthorized},
	{export.ErrNoTeacher, http.StatusUnauthorized},
	{register.ErrTeacherNotFound, http.StatusBadRequest},
	{register.ErrWrongPassword, http.StatusBadRequest},
	{register.ErrNoClass, http.StatusConflict},
	{export.ErrNoClass, http.StatusConflict},
	{export.ErrNoDate, http.StatusBadRequest},
	{register.ErrClassNotFound, http.StatusNotFound},
	{register.ErrStudentNotFound, http.StatusNotFound},
}

func sentinelCode(cause error) (int, bool) {
	for _, s := range sentinelCodes {
		if cause == s.err {
			return s.code, true
		}
	}
	return 0, false
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
func newAppHTTPErrorHandler(logger core.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		cause := errors.Cause(err)
		if c, ok := sentinelCode(cause); ok {
			code = c
			message = cause.Error()
			// wrong name and wrong password look the same from outside
			if cause == register.ErrTeacherNotFound || cause == register.ErrWrongPassword {
				message = "invalid credentials"
			}
		} else {
			switch origErr := cause.(type) {
			case *echo.HTTPError:
				if origErr.Internal != nil {
					if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
						origErr = herr
					}
				}
				code = origErr.Code
				message = origErr.Message
			case validator.ValidationErrors:
				fldErrs := make(map[string]string, len(origErr))
				for _, vErr := range origErr {
					fldErrs[vErr.Field()] = vErr.Translate(core.Translator)
				}
				code = http.StatusBadRequest
				message = fldErrs
			case *core.ValidationError:
				if origErr.Fields != nil {
					fldErrs := make(map[string]string, len(origErr.Fields))
					for _, fErr := range origErr.Fields {
						fldErrs[fErr.Field] = fErr.Error
					}
					message = fldErrs
				} else {
					message = origErr.Error()
				}
				code = http.StatusBadRequest
			default: // any other error is a server error
				code = http.StatusInternalServerError
				msg := http.StatusText(http.StatusInternalServerError)
				message = msg
				logger.Error(msg, errors.Wrap(err, msg), contextTeacher(ctx))
			}
		}

		if ctx.Echo().Debug {
			message = err.Error()
		} else if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
