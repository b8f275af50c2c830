package errorx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/joeblew999/plat-contact/pkg/contact"
	"github.com/joeblew999/plat-contact/pkg/mail"
	"github.com/joeblew999/plat-contact/pkg/relay"
	"github.com/stretchr/testify/assert"
)

func TestFromSubmit(t *testing.T) {
	tests := []struct {
		err  error
		code int
		msg  string
	}{
		{contact.ErrMissingFields, http.StatusBadRequest, MsgMissingFields},
		{relay.ErrNotConfigured, http.StatusInternalServerError, MsgNotConfigured},
		{relay.ErrTransportUnavailable, http.StatusInternalServerError, MsgInitFailed},
		{&mail.SendError{Code: mail.CodeAuth, Err: errors.New("535")}, http.StatusInternalServerError, MsgAuthFailed},
		{&mail.SendError{Code: mail.CodeConnRefused, Err: errors.New("refused")}, http.StatusInternalServerError, MsgUnavailable},
		{fmt.Errorf("wrapped: %w", &mail.SendError{Code: mail.CodeTimeout, Err: errors.New("i/o timeout")}), http.StatusInternalServerError, MsgUnavailable},
		{&mail.SendError{Code: mail.CodeEnvelope, Err: errors.New("550 no such user")}, http.StatusInternalServerError, MsgSendFailed},
		{errors.New("boom"), http.StatusInternalServerError, MsgSendFailed},
	}

	for _, tt := range tests {
		ce := FromSubmit(tt.err)
		assert.Equal(t, tt.code, ce.Code, tt.err.Error())
		assert.Equal(t, tt.msg, ce.Msg, tt.err.Error())
		assert.NotContains(t, ce.Msg, tt.err.Error())
	}
}
