package mail

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/textproto"
	"syscall"
)

// Code classifies a delivery failure.
type Code string

const (
	CodeAuth        Code = "EAUTH"
	CodeConnRefused Code = "ECONNREFUSED"
	CodeTimeout     Code = "ETIMEDOUT"
	CodeConnection  Code = "ECONNECTION"
	CodeEnvelope    Code = "EENVELOPE"
	CodeProtocol    Code = "EPROTOCOL"
	CodeUnknown     Code = "EUNKNOWN"
)

// SMTP exchange stages, recorded on SendError.Op.
const (
	opCompose  = "compose"
	opWait     = "wait"
	opDial     = "dial"
	opGreeting = "greeting"
	opHello    = "hello"
	opAuth     = "auth"
	opMail     = "mail"
	opRcpt     = "rcpt"
	opData     = "data"
)

// SendError is returned for every failed delivery attempt.
type SendError struct {
	Code Code
	Op   string
	Err  error
}

func newSendError(op string, err error) *SendError {
	return &SendError{Code: classify(op, err), Op: op, Err: err}
}

func (e *SendError) Error() string {
	return fmt.Sprintf("mail: %s failed (%s): %v", e.Op, e.Code, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// CodeOf returns the classification of err, or CodeUnknown.
func CodeOf(err error) Code {
	var se *SendError
	if errors.As(err, &se) {
		return se.Code
	}
	return CodeUnknown
}

// IsAuth reports whether err is an authentication failure.
func IsAuth(err error) bool {
	return CodeOf(err) == CodeAuth
}

// IsConnectivity reports whether err means the SMTP peer could not be reached
// or stopped responding.
func IsConnectivity(err error) bool {
	switch CodeOf(err) {
	case CodeConnRefused, CodeTimeout, CodeConnection:
		return true
	}
	return false
}

// Hint returns operator guidance for a failure against addr.
func Hint(err error, addr string) string {
	switch CodeOf(err) {
	case CodeAuth:
		return "check EMAIL_USER and EMAIL_PASS; Gmail requires an app password"
	case CodeConnRefused:
		return fmt.Sprintf("cannot connect to %s; check firewall or hosting provider restrictions", addr)
	case CodeTimeout:
		return "connection timed out; network or firewall may be blocking the SMTP port"
	case CodeConnection:
		return fmt.Sprintf("connection to %s dropped; check SMTP server connectivity and the secure flag", addr)
	case CodeEnvelope:
		return "the server rejected the sender or recipient address"
	}
	return ""
}

func classify(op string, err error) Code {
	var ne net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &ne) && ne.Timeout():
		return CodeTimeout
	case errors.Is(err, syscall.ECONNREFUSED):
		return CodeConnRefused
	}

	var tp *textproto.Error
	if errors.As(err, &tp) {
		switch {
		case tp.Code == 454 || tp.Code == 530 || tp.Code == 534 || tp.Code == 535 || tp.Code == 538:
			return CodeAuth
		case op == opMail || op == opRcpt:
			return CodeEnvelope
		}
		return CodeProtocol
	}

	switch op {
	case opAuth:
		return CodeAuth
	case opWait:
		// the limiter refuses to wait past the context deadline
		return CodeTimeout
	case opCompose:
		return CodeEnvelope
	case opDial, opGreeting, opHello:
		return CodeConnection
	}

	var oe *net.OpError
	if errors.As(err, &oe) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return CodeConnection
	}
	return CodeUnknown
}
