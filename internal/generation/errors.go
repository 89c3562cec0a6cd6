package generation

import (
	"errors"
	"fmt"

	"github.com/clafollett/agenterra-go/internal/proto"
)

// Kind is the closed set of generation-domain error kinds. Every
// component surfaces one of these so the use-case layer can report a
// single-line failure naming the stage, per SPEC_FULL.md's error
// handling design.
type Kind string

const (
	KindValidation                    Kind = "validation_error"
	KindInvalidLanguage                Kind = "invalid_language"
	KindDiscovery                      Kind = "discovery_error"
	KindRender                         Kind = "render_error"
	KindPostProcessing                 Kind = "post_processing_error"
	KindLoad                           Kind = "load_error"
	KindUnsupportedLanguageForProtocol Kind = "unsupported_language_for_protocol"
	KindUnsupportedLanguage            Kind = "unsupported_language"
	KindInvalidConfiguration           Kind = "invalid_configuration"
	KindInvalidManifest                Kind = "invalid_manifest"
	KindIO                             Kind = "io_error"
	KindSerialization                  Kind = "serialization_error"
	KindProtocol                       Kind = "protocol_error"
	KindUnsupportedRole                Kind = "unsupported_role"
	KindNotImplemented                 Kind = "not_implemented"
	KindOutput                         Kind = "output_error"
)

// Error is the generation domain's single error type: a Kind plus a
// message and an optional wrapped cause, adapted from the teacher's
// StandardError/ErrorCode taxonomy (internal/errors/standard_errors.go)
// onto this domain's Kind set instead of the teacher's HTTP/JSON-RPC
// error codes.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is supports errors.Is(err, ErrKind(KindValidation)) style checks
// without string matching on the message.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// New builds a plain *Error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of the given kind, wrapping cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// ErrKind returns a sentinel *Error of kind k, suitable as the target
// of errors.Is.
func ErrKind(k Kind) error { return &Error{Kind: k} }

// UnsupportedLanguageForProtocol is a convenience constructor matching
// the Rust source's struct variant (carries both fields for message
// formatting and structured inspection).
func UnsupportedLanguageForProtocol(language proto.Language, protocol proto.Protocol) *Error {
	return &Error{
		Kind:    KindUnsupportedLanguageForProtocol,
		Message: fmt.Sprintf("unsupported language %s for protocol %s", language, protocol),
	}
}
