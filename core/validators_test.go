package core

import (
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/tsegazeab/timhirt/core/ethiopic"
)

func TestEthiopicDateValidation(t *testing.T) {
	validate := validator.New()
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ := uni.GetTranslator("en")
	InitValidators(validate, translator)

	tests := []struct {
		name      string
		date      ethiopic.EthiopianDate
		wantField string
		wantMsg   string
	}{
		{name: "valid date", date: ethiopic.EthiopianDate{Year: 2016, Month: 1, Day: 30}},
		{name: "Pagume leap day", date: ethiopic.EthiopianDate{Year: 2011, Month: 13, Day: 6}},
		{
			name: "month too large", date: ethiopic.EthiopianDate{Year: 2016, Month: 14, Day: 1},
			wantField: "month", wantMsg: "month must be between 1 and 13",
		},
		{
			name: "month zero", date: ethiopic.EthiopianDate{Year: 2016, Month: 0, Day: 1},
			wantField: "month", wantMsg: "month must be between 1 and 13",
		},
		{
			name: "Pagume day in non-leap year", date: ethiopic.EthiopianDate{Year: 2016, Month: 13, Day: 6},
			wantField: "day", wantMsg: "day must be between 1 and 5",
		},
		{
			name: "day zero", date: ethiopic.EthiopianDate{Year: 2016, Month: 1, Day: 0},
			wantField: "day", wantMsg: "day must be between 1 and 30",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.date)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Struct() error = %v, want nil", err)
				}
				return
			}

			vErrs, ok := err.(validator.ValidationErrors)
			if !ok {
				t.Fatalf("Struct() error = %v, want validator.ValidationErrors", err)
			}
			if len(vErrs) != 1 {
				t.Fatalf("Struct() returned %d field errors, want 1", len(vErrs))
			}
			if got := vErrs[0].Field(); got != tt.wantField {
				t.Errorf("field = %q, want %q", got, tt.wantField)
			}
			if got := vErrs[0].Translate(translator); got != tt.wantMsg {
				t.Errorf("message = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}
