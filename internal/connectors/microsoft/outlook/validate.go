package outlook

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// encodePayload validates a write payload and encodes it as JSON.
// Validation failures are LocalValidationErrors raised before any remote call.
func encodePayload(v any) (string, error) {
	if err := validate.Struct(v); err != nil {
		return "", validationError(err)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", &LocalValidationError{Field: "payload", Reason: err.Error(), Err: ErrInvalidPayload}
	}
	return string(data), nil
}

func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		reason := "failed " + fe.Tag()
		if fe.Param() != "" {
			reason = fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
		}
		return &LocalValidationError{Field: fe.Namespace(), Reason: reason, Err: ErrInvalidPayload}
	}
	return &LocalValidationError{Field: "payload", Reason: err.Error(), Err: ErrInvalidPayload}
}
