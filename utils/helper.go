package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ttacon/libphonenumber"
)

// DefaultPhoneRegion is the region used to parse national-format phone
// numbers. Override with EMPLOYEE_PHONE_REGION.
var DefaultPhoneRegion = "US"

func init() {
	if v := strings.TrimSpace(os.Getenv("EMPLOYEE_PHONE_REGION")); v != "" {
		DefaultPhoneRegion = strings.ToUpper(v)
	}
}

// NormalizePhoneNumber validates a phone number and returns it in E.164
// format so the same employee never ends up with two spellings of a number.
func NormalizePhoneNumber(phoneNumber, region string) (string, error) {
	if region == "" {
		region = DefaultPhoneRegion
	}
	p, err := libphonenumber.Parse(phoneNumber, region)
	if err != nil {
		return "", err
	}
	if !libphonenumber.IsValidNumber(p) {
		return "", fmt.Errorf("phone number is not valid")
	}
	return libphonenumber.Format(p, libphonenumber.E164), nil
}

func ProcessValidationErrors(err error) map[string]string {

	validationErrors := err.(validator.ValidationErrors)

	errorResponse := make(map[string]string)

	for _, ve := range validationErrors {
		errorResponse[ve.Field()] = ve.Tag()
	}

	return errorResponse
}

func NewTrue() *bool {
	b := true
	return &b
}

func DereferencePtr[T any](ptr *T, def T) T {
	if ptr == nil {
		return def
	}
	return *ptr
}
