package errorx

import (
	"context"
	"errors"
	"net/http"

	"github.com/joeblew999/plat-contact/pkg/contact"
	"github.com/joeblew999/plat-contact/pkg/mail"
	"github.com/joeblew999/plat-contact/pkg/relay"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpx"
)

// User-facing messages. Transport detail never reaches the caller.
const (
	MsgMissingFields   = "Missing required fields (name, email, message)"
	MsgInvalidBody     = "Invalid request body"
	MsgNotConfigured   = "Email service not configured on server. Contact administrator."
	MsgInitFailed      = "Email service initialization failed. Contact administrator."
	MsgAuthFailed      = "Email authentication failed. Server configuration issue."
	MsgUnavailable     = "Email service temporarily unavailable. Please try again."
	MsgSendFailed      = "Failed to send email. Please try again later."
	MsgNotAllowed      = "Not allowed"
	MsgInternalFailure = "internal server error"
)

// CodeError is a typed error that carries an HTTP status code.
// Logic functions return these so the global error handler can map
// them to the correct HTTP response.
type CodeError struct {
	Code int
	Msg  string
}

func (e *CodeError) Error() string {
	return e.Msg
}

// Body is the structured failure body.
type Body struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// ErrBadRequest returns a 400 error.
func ErrBadRequest(msg string) error {
	return &CodeError{Code: http.StatusBadRequest, Msg: msg}
}

// ErrForbidden returns a 403 error.
func ErrForbidden(msg string) error {
	return &CodeError{Code: http.StatusForbidden, Msg: msg}
}

// FromSubmit maps a relay.Submit error to its HTTP status and user message.
func FromSubmit(err error) *CodeError {
	switch {
	case errors.Is(err, contact.ErrMissingFields):
		return &CodeError{Code: http.StatusBadRequest, Msg: MsgMissingFields}
	case errors.Is(err, relay.ErrNotConfigured):
		return &CodeError{Code: http.StatusInternalServerError, Msg: MsgNotConfigured}
	case errors.Is(err, relay.ErrTransportUnavailable):
		return &CodeError{Code: http.StatusInternalServerError, Msg: MsgInitFailed}
	case mail.IsAuth(err):
		return &CodeError{Code: http.StatusInternalServerError, Msg: MsgAuthFailed}
	case mail.IsConnectivity(err):
		return &CodeError{Code: http.StatusInternalServerError, Msg: MsgUnavailable}
	default:
		return &CodeError{Code: http.StatusInternalServerError, Msg: MsgSendFailed}
	}
}

// RegisterErrorHandler installs a global error handler that maps CodeError
// to its status and a {success:false, error} body. Untyped errors become 500.
func RegisterErrorHandler() {
	httpx.SetErrorHandlerCtx(func(ctx context.Context, err error) (int, any) {
		var ce *CodeError
		if errors.As(err, &ce) {
			return ce.Code, &Body{Success: false, Error: ce.Msg}
		}

		logx.WithContext(ctx).Errorf("unexpected error: %v", err)
		return http.StatusInternalServerError, &Body{
			Success: false,
			Error:   MsgInternalFailure,
		}
	})
}
