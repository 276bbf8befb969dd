package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tsegazeab/timhirt/core/certificate"
	"github.com/tsegazeab/timhirt/core/user"
)

type certificateApi struct {
	svc    certificate.Service
	usrSvc user.Service
}

func registerCertificateAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc certificate.Service, usrSvc user.Service) {
	api := certificateApi{
		svc:    svc,
		usrSvc: usrSvc,
	}

	cg := g.Group("/students/:id/certificates", jwt)
	cg.GET("", api.query, ctxStudentOrStaffMiddleware())
	cg.POST("/evaluate", api.evaluate, staffMiddleware())
}

// Handlers

func (api *certificateApi) query(ctx echo.Context) error {
	awards, err := api.svc.QueryStudent(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying student awards")
	}
	if awards == nil {
		awards = []certificate.Award{}
	}
	return ctx.JSON(http.StatusOK, awards)
}

func (api *certificateApi) evaluate(ctx echo.Context) error {
	// make sure the student exists before running the rules
	if _, err := api.usrSvc.GetByID(ctx.Param("id")); err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding user by ID")
	}

	awards, err := api.svc.EvaluateStudent(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "evaluating student")
	}
	if awards == nil {
		awards = []certificate.Award{}
	}
	return ctx.JSON(http.StatusOK, awards)
}
