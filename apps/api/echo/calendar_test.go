package echoapi

import (
	"net/http"
	"testing"
)

func Test_calendarApi_convert(t *testing.T) {
	env := setupServer(t)

	tests := []httpTest{
		{
			name: "Gregorian to Ethiopian", method: http.MethodGet,
			path:     "/v1/calendar/ethiopic?date=2023-09-12",
			wantCode: http.StatusOK,
			wantData: []byte(`{"gregorian":"2023-09-12","ethiopian":{"year":2016,"month":1,"day":1},"formatted":"Meskerem 1, 2016"}`),
		},
		{
			name: "Ethiopian to Gregorian", method: http.MethodGet,
			path:     "/v1/calendar/ethiopic?year=2016&month=1&day=1",
			wantCode: http.StatusOK,
			wantData: []byte(`{"gregorian":"2023-09-12","ethiopian":{"year":2016,"month":1,"day":1},"formatted":"Meskerem 1, 2016"}`),
		},
		{
			name: "Pagume leap day", method: http.MethodGet,
			path:     "/v1/calendar/ethiopic?year=2011&month=13&day=6",
			wantCode: http.StatusOK,
			wantData: []byte(`{"gregorian":"2019-09-11","ethiopian":{"year":2011,"month":13,"day":6},"formatted":"Pagume 6, 2011"}`),
		},
		{
			name: "mid-year date", method: http.MethodGet,
			path:     "/v1/calendar/ethiopic?date=2024-01-07",
			wantCode: http.StatusOK,
			wantData: []byte(`{"gregorian":"2024-01-07","ethiopian":{"year":2016,"month":4,"day":28},"formatted":"Tahsas 28, 2016"}`),
		},
		{
			name: "bad date", method: http.MethodGet,
			path:     "/v1/calendar/ethiopic?date=12-09-2023",
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"date":"invalid date; expected YYYY-MM-DD"}`),
		},
		{
			name: "month out of range", method: http.MethodGet,
			path:     "/v1/calendar/ethiopic?year=2016&month=14&day=1",
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"month":"month must be between 1 and 13"}`),
		},
		{
			name: "Pagume day out of range in non-leap year", method: http.MethodGet,
			path:     "/v1/calendar/ethiopic?year=2016&month=13&day=6",
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"day":"day must be between 1 and 5"}`),
		},
		{
			name: "missing params", method: http.MethodGet,
			path:     "/v1/calendar/ethiopic",
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(tt)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_calendarApi_today(t *testing.T) {
	env := setupServer(t)

	rec := env.do(httpTest{method: http.MethodGet, path: "/v1/calendar/ethiopic/today"})
	if rec.Code != http.StatusOK {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, http.StatusOK)
	}
}
