package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/trezcool/asistencia/core/register"
)

const ctxTeacherKey = "teacher"

// sessionMiddleware rejects requests while nobody is logged in and puts the Teacher in the context.
func sessionMiddleware(svc *register.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			var (
				t  register.Teacher
				ok bool
			)
			svc.Read(func(st *register.State) { t, ok = st.CurrentTeacher() })
			if !ok {
				return errUnauthorized
			}
			ctx.Set(ctxTeacherKey, t)
			return next(ctx)
		}
	}
}

// contextTeacher returns the Teacher set by sessionMiddleware; zero on public routes.
func contextTeacher(ctx echo.Context) register.Teacher {
	t, _ := ctx.Get(ctxTeacherKey).(register.Teacher)
	return t
}
