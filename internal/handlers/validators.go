package handlers

import (
	"reflect"
	"sync"

	"github.com/SscSPs/expense_workflow_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var registerValidatorsOnce sync.Once

// registerValidators teaches gin's validator about decimal amounts and
// expense statuses. Safe to call more than once.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		_ = v.RegisterValidation("expense_status", validateExpenseStatus)
	})
}

// decimalValue lets numeric tags such as gt=0 compare decimal amounts.
func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

func validateExpenseStatus(fl validator.FieldLevel) bool {
	_, err := domain.ParseExpenseStatus(fl.Field().String())
	return err == nil
}
