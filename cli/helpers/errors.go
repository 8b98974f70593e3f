package helpers

import (
	"context"
	"errors"

	"github.com/compozy/products/cli/api"
)

// FromAPIError converts a client error into a CliError carrying a stable code.
// Errors that did not come from the API client are returned as INTERNAL_ERROR.
func FromAPIError(err error) *CliError {
	if err == nil {
		return nil
	}
	var cliErr *CliError
	if errors.As(err, &cliErr) {
		return cliErr
	}
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return NewCliError(CodeInternal, err.Error())
	}
	message := apiErr.Action.FailureMessage()
	details := apiErr.Message
	if details == "" && apiErr.Cause != nil {
		details = apiErr.Cause.Error()
	}
	var out *CliError
	switch apiErr.Kind {
	case api.KindNetwork:
		code := CodeNetwork
		if errors.Is(apiErr.Cause, context.DeadlineExceeded) {
			code = CodeTimeout
		}
		out = NewCliError(code, message, details)
	case api.KindNotFound:
		out = NewCliError(CodeNotFound, message, details)
	case api.KindValidation:
		out = NewCliError(CodeValidation, message, details)
	case api.KindCanceled:
		out = NewCliError(CodeCanceled, "Operation canceled")
	default:
		out = NewCliError(CodeServer, message, details)
	}
	if apiErr.Status != 0 {
		out.WithContext("status", apiErr.Status)
	}
	return out.WithContext("action", string(apiErr.Action))
}
