package service

import (
	"errors"
	"fmt"
	apperrors "go-gin-flight-booking/pkg/app_errors"

	"github.com/go-playground/validator/v10"
)

var passengerValidate = validator.New()

var passengerRules = []struct {
	field string
	rule  string
}{
	{"passenger_name", "required,max=100"},
	{"passenger_email", "required,email,max=254"},
}

// checkPassenger 驗證乘客欄位；nil 代表未提供（部分更新），略過
func checkPassenger(name, email *string) error {
	fields := map[string]string{}
	for i, value := range []*string{name, email} {
		if value == nil {
			continue
		}
		rule := passengerRules[i]
		if err := passengerValidate.Var(*value, rule.rule); err != nil {
			fields[rule.field] = passengerMessage(err)
		}
	}
	if len(fields) > 0 {
		return &apperrors.ValidationError{Fields: fields}
	}
	return nil
}

func passengerMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid value."
	}
	switch fe := verrs[0]; fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	default:
		return fmt.Sprintf("Failed on the '%s' rule.", fe.Tag())
	}
}
