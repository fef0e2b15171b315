package adapter

import (
	"errors"
	"fmt"
)

// Kind is the closed set of outcomes a failed remote call is classified into.
// Control flow keys off the Kind, never off the message text.
type Kind int

const (
	// KindNone is the Kind of a nil error.
	KindNone Kind = iota
	// KindNetwork: transport failure or a 2xx body that is not an envelope.
	KindNetwork
	// KindAuth: HTTP 401, the credential is invalid or expired.
	KindAuth
	// KindConflict: HTTP 409, e.g. duplicate username or email.
	KindConflict
	// KindClient: any other HTTP 4xx.
	KindClient
	// KindServer: HTTP 5xx.
	KindServer
	// KindAPI: HTTP 2xx carrying a business failure.
	KindAPI
	// KindUnknown: any other status.
	KindUnknown
)

// Sentinels matched by [Error.Is], one per Kind.
var (
	ErrNetwork      = errors.New("network error")
	ErrUnauthorized = errors.New("client unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrClient       = errors.New("client error")
	ErrServer       = errors.New("server error")
	ErrAPI          = errors.New("api error")
	ErrUnknown      = errors.New("unknown error")
)

// Network failure reasons.
const (
	ReasonTimeout          = "timeout"
	ReasonHostResolution   = "host resolution failed"
	ReasonCanceled         = "request canceled"
	ReasonIO               = "i/o failure"
	ReasonMalformedPayload = "empty or malformed response"
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindConflict:
		return "conflict"
	case KindClient:
		return "client"
	case KindServer:
		return "server"
	case KindAPI:
		return "api"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindNetwork:
		return ErrNetwork
	case KindAuth:
		return ErrUnauthorized
	case KindConflict:
		return ErrConflict
	case KindClient:
		return ErrClient
	case KindServer:
		return ErrServer
	case KindAPI:
		return ErrAPI
	case KindNone:
		return nil
	default:
		return ErrUnknown
	}
}

// Error is the typed failure of a remote call.
type Error struct {
	Kind Kind

	// Message is display text: the network reason, or the envelope message
	// the backend sent. It never drives control flow.
	Message string

	// Code is the HTTP status, zero for network and api failures.
	Code int

	// Err is the underlying transport error, if any.
	Err error
}

func (e *Error) Error() string {
	msg := "unclassified error"
	if base := e.Kind.sentinel(); base != nil {
		msg = base.Error()
	}
	if e.Code != 0 {
		msg = fmt.Sprintf("%s (http %d)", msg, e.Code)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel of e.Kind.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// KindOf returns the Kind of err: KindNone for nil, the Kind of a wrapped
// *Error, KindUnknown for anything else.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func newError(kind Kind, message string, code int, cause error) *Error {
	return &Error{Kind: kind, Message: message, Code: code, Err: cause}
}
