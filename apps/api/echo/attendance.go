package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tsegazeab/timhirt/core"
	"github.com/tsegazeab/timhirt/core/attendance"
	"github.com/tsegazeab/timhirt/core/user"
)

const monthLayout = "2006-01"

type attendanceApi struct {
	svc      attendance.Service
	usrSvc   user.Service
	validate *validator.Validate
}

func registerAttendanceAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc attendance.Service,
	usrSvc user.Service,
	validate *validator.Validate,
) {
	api := attendanceApi{
		svc:      svc,
		usrSvc:   usrSvc,
		validate: validate,
	}

	ag := g.Group("/attendance", jwt)
	ag.POST("", api.mark, staffMiddleware())

	sg := g.Group("/students/:id/attendance", jwt, ctxStudentOrStaffMiddleware())
	sg.GET("/sheet", api.sheet)
	sg.GET("/active-days", api.activeDays)
}

// Handlers

func (api *attendanceApi) mark(ctx echo.Context) error {
	var data attendance.MarkDay
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MarkDay")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	rec, err := api.svc.Mark(data, claims.Subject)
	if err != nil {
		return errors.Wrap(err, "marking attendance")
	}
	return ctx.JSON(http.StatusCreated, rec)
}

func (api *attendanceApi) sheet(ctx echo.Context) error {
	courseID := ctx.QueryParam("course_id")
	if courseID == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "course_id", Error: "this field is required"})
	}

	monthOf := time.Now().UTC()
	if month := ctx.QueryParam("month"); month != "" {
		t, err := time.Parse(monthLayout, month)
		if err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "month", Error: "invalid month; expected YYYY-MM"})
		}
		monthOf = t
	}

	sheet, err := api.svc.Sheet(ctx.Param("id"), courseID, monthOf)
	if err != nil {
		return errors.Wrap(err, "getting attendance sheet")
	}
	return ctx.JSON(http.StatusOK, SheetResponse{
		StudentID: ctx.Param("id"),
		CourseID:  courseID,
		Month:     monthOf.Format(monthLayout),
		Days:      sheet,
	})
}

func (api *attendanceApi) activeDays(ctx echo.Context) error {
	window := 30
	if w := ctx.QueryParam("window"); w != "" {
		n, err := strconv.Atoi(w)
		if err != nil || n < 1 {
			return core.NewValidationError(nil, core.FieldError{Field: "window", Error: "a positive integer is required"})
		}
		window = n
	}

	asOf := time.Now().UTC()
	if d := ctx.QueryParam("as_of"); d != "" {
		t, err := time.Parse(dateLayout, d)
		if err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "as_of", Error: "invalid date; expected YYYY-MM-DD"})
		}
		asOf = t
	}

	days, err := api.svc.ActiveDays(ctx.Param("id"), window, asOf)
	if err != nil {
		return errors.Wrap(err, "counting active days")
	}
	return ctx.JSON(http.StatusOK, ActiveDaysResponse{
		StudentID:  ctx.Param("id"),
		WindowDays: window,
		AsOf:       asOf.Format(dateLayout),
		DaysActive: days,
	})
}

type (
	SheetResponse struct {
		StudentID string            `json:"student_id"`
		CourseID  string            `json:"course_id"`
		Month     string            `json:"month"` // YYYY-MM
		Days      attendance.DayMap `json:"days"`
	}

	ActiveDaysResponse struct {
		StudentID  string `json:"student_id"`
		WindowDays int    `json:"window_days"`
		AsOf       string `json:"as_of"` // YYYY-MM-DD
		DaysActive int    `json:"days_active"`
	}
)
