package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tsegazeab/timhirt/core/grading"
	"github.com/tsegazeab/timhirt/core/user"
)

type gradingApi struct {
	svc      grading.Service
	usrSvc   user.Service
	validate *validator.Validate
}

func registerGradingAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc grading.Service,
	usrSvc user.Service,
	validate *validator.Validate,
) {
	api := gradingApi{
		svc:      svc,
		usrSvc:   usrSvc,
		validate: validate,
	}

	ag := g.Group("/assignments", jwt)
	ag.POST("", api.createAssignment, staffMiddleware())
	ag.GET("/:id", api.retrieveAssignment)

	g.GET("/courses/:id/assignments", api.queryCourseAssignments, jwt)

	sg := g.Group("/submissions", jwt)
	sg.POST("", api.submit)
	sg.GET("", api.querySubmissions, staffMiddleware())
	sg.GET("/:id", api.retrieveSubmission, staffMiddleware())
	sg.POST("/:id/grade", api.grade, staffMiddleware())
}

// Handlers

func (api *gradingApi) createAssignment(ctx echo.Context) error {
	var data grading.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	a, err := api.svc.CreateAssignment(data)
	if err != nil {
		return errors.Wrap(err, "creating assignment")
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *gradingApi) retrieveAssignment(ctx echo.Context) error {
	a, err := api.svc.GetAssignment(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == grading.ErrAssignmentNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting assignment")
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *gradingApi) queryCourseAssignments(ctx echo.Context) error {
	assignments, err := api.svc.QueryCourseAssignments(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying course assignments")
	}
	if assignments == nil {
		assignments = []grading.Assignment{}
	}
	return ctx.JSON(http.StatusOK, assignments)
}

func (api *gradingApi) submit(ctx echo.Context) error {
	var data grading.NewSubmission
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubmission")
	}

	// students can only submit as themselves
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	if !(claims.IsTeacher || claims.IsAdmin) {
		data.StudentID = claims.Subject
	}

	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sub, err := api.svc.Submit(data)
	if err != nil {
		if errors.Cause(err) == grading.ErrAssignmentNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "creating submission")
	}
	return ctx.JSON(http.StatusCreated, sub)
}

func (api *gradingApi) querySubmissions(ctx echo.Context) error {
	filter := new(grading.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []grading.Submission{})
	}

	subs, err := api.svc.FilterSubmissions(*filter)
	if err != nil {
		return errors.Wrap(err, "filtering submissions")
	}
	if subs == nil {
		subs = []grading.Submission{}
	}
	return ctx.JSON(http.StatusOK, subs)
}

func (api *gradingApi) retrieveSubmission(ctx echo.Context) error {
	sub, err := api.svc.GetSubmission(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == grading.ErrSubmissionNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting submission")
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *gradingApi) grade(ctx echo.Context) error {
	var data grading.GradeSubmission
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GradeSubmission")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sub, err := api.svc.Grade(ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == grading.ErrSubmissionNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "grading submission")
	}
	return ctx.JSON(http.StatusOK, sub)
}
