package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// Action names the operation a request belongs to.
type Action string

const (
	ActionList   Action = "list"
	ActionGet    Action = "get"
	ActionTypes  Action = "types"
	ActionAdd    Action = "add"
	ActionDelete Action = "delete"
)

// Actions lists every action in display order.
var Actions = []Action{ActionList, ActionGet, ActionTypes, ActionAdd, ActionDelete}

// ErrorKind classifies why a request failed.
type ErrorKind string

const (
	KindNetwork    ErrorKind = "network"
	KindNotFound   ErrorKind = "not_found"
	KindServer     ErrorKind = "server"
	KindValidation ErrorKind = "validation"
	KindCanceled   ErrorKind = "canceled"
)

// Error is returned by every ProductClient method.
type Error struct {
	Action  Action
	Kind    ErrorKind
	Status  int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", e.Action, e.Kind)
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	} else if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf returns the kind of err, or "" when err is not an *Error.
func KindOf(err error) ErrorKind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

// transportError wraps a failure that happened before any response arrived.
func transportError(action Action, err error) *Error {
	kind := KindNetwork
	if errors.Is(err, context.Canceled) {
		kind = KindCanceled
	}
	return &Error{Action: action, Kind: kind, Cause: err}
}

// statusError classifies a non-2xx response.
func statusError(action Action, status int, body []byte) *Error {
	kind := KindServer
	switch {
	case status == http.StatusNotFound:
		kind = KindNotFound
	case status >= 400 && status < 500:
		kind = KindValidation
	}
	return &Error{
		Action:  action,
		Kind:    kind,
		Status:  status,
		Message: errorMessage(body),
	}
}

// decodeError reports a 2xx response whose body could not be decoded.
func decodeError(action Action, status int, err error) *Error {
	return &Error{
		Action:  action,
		Kind:    KindServer,
		Status:  status,
		Message: "malformed response body",
		Cause:   err,
	}
}

const maxPlainMessage = 200

// errorMessage pulls a human readable message out of a JSON error body.
func errorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		text := strings.TrimSpace(string(body))
		if len(text) > maxPlainMessage {
			text = text[:maxPlainMessage] + "..."
		}
		return text
	}
	for _, path := range []string{"message", "error", "error.message", "detail"} {
		if r := gjson.GetBytes(body, path); r.Exists() && r.Type == gjson.String {
			return r.String()
		}
	}
	return ""
}
