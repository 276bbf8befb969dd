package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/tsegazeab/timhirt/core"
	"github.com/tsegazeab/timhirt/core/ethiopic"
)

const dateLayout = "2006-01-02"

type calendarApi struct {
	validate *validator.Validate
}

func registerCalendarAPI(g *echo.Group, validate *validator.Validate) {
	api := calendarApi{validate}

	cg := g.Group("/calendar")
	cg.GET("/ethiopic", api.convert)
	cg.GET("/ethiopic/today", api.today)
}

type EthiopicDateResponse struct {
	Gregorian string                 `json:"gregorian"` // YYYY-MM-DD
	Ethiopian ethiopic.EthiopianDate `json:"ethiopian"`
	Formatted string                 `json:"formatted"`
}

func newEthiopicDateResponse(t time.Time, eth ethiopic.EthiopianDate) EthiopicDateResponse {
	return EthiopicDateResponse{
		Gregorian: t.Format(dateLayout),
		Ethiopian: eth,
		Formatted: eth.Format(),
	}
}

// convert converts in either direction:
// `?date=YYYY-MM-DD` (Gregorian -> Ethiopian) or `?year=&month=&day=`
// (Ethiopian -> Gregorian).
func (api calendarApi) convert(ctx echo.Context) error {
	if date := ctx.QueryParam("date"); date != "" {
		t, err := time.Parse(dateLayout, date)
		if err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "date", Error: "invalid date; expected YYYY-MM-DD"})
		}
		return ctx.JSON(http.StatusOK, newEthiopicDateResponse(t, ethiopic.ToEthiopian(t)))
	}

	eth, err := api.bindEthiopianDate(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, newEthiopicDateResponse(eth.Gregorian(), eth))
}

func (api calendarApi) today(ctx echo.Context) error {
	now := time.Now().UTC()
	return ctx.JSON(http.StatusOK, newEthiopicDateResponse(now, ethiopic.ToEthiopian(now)))
}

func (api calendarApi) bindEthiopianDate(ctx echo.Context) (ethiopic.EthiopianDate, error) {
	var eth ethiopic.EthiopianDate
	var flds []core.FieldError

	intParam := func(name string) int {
		val := ctx.QueryParam(name)
		n, err := strconv.Atoi(val)
		if val == "" || err != nil {
			flds = append(flds, core.FieldError{Field: name, Error: "a valid integer is required"})
		}
		return n
	}
	eth.Year = intParam("year")
	eth.Month = intParam("month")
	eth.Day = intParam("day")
	if flds != nil {
		return ethiopic.EthiopianDate{}, core.NewValidationError(nil, flds...)
	}

	if err := api.validate.Struct(eth); err != nil {
		return ethiopic.EthiopianDate{}, err
	}
	return eth, nil
}
