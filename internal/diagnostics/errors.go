package diagnostics

import (
	"errors"
	"fmt"

	"github.com/funvibe/funssa/internal/token"
)

type ErrorCode string

const (
	// Lexer
	ErrL001 ErrorCode = "L001" // illegal character or inconsistent indentation

	// Parser
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // expected token missing
	ErrP003 ErrorCode = "P003" // invalid assignment target
	ErrP004 ErrorCode = "P004" // expression too complex

	// SSA pass
	ErrS001 ErrorCode = "S001" // invalid root
	ErrS002 ErrorCode = "S002" // unsupported control flow
	ErrS003 ErrorCode = "S003" // unprovable name
	ErrS004 ErrorCode = "S004" // non-returning function
	ErrS005 ErrorCode = "S005" // unsupported statement

	// Unroll pass
	ErrU001 ErrorCode = "U001" // loop cannot be unrolled

	// Runtime
	ErrR001 ErrorCode = "R001" // generic runtime error
	ErrR002 ErrorCode = "R002" // unbound name
	ErrR003 ErrorCode = "R003" // type error

	// Configuration and driver
	ErrC001 ErrorCode = "C001" // configuration or environment failure
)

var errorTemplates = map[ErrorCode]string{
	ErrL001: "%s",
	ErrP001: "unexpected token %s",
	ErrP002: "expected %s, got %s",
	ErrP003: "cannot assign to %s",
	ErrP004: "%s",
	ErrS001: "ssa must be rooted at a function definition, got %s",
	ErrS002: "cannot handle %s statement",
	ErrS003: "cannot prove name %q is defined",
	ErrS004: "cannot prove function %q returns",
	ErrS005: "cannot handle %s statement in a converted body",
	ErrU001: "%s",
	ErrR001: "%s",
	ErrR002: "name %q is not defined",
	ErrR003: "%s",
	ErrC001: "%s",
}

// Names used in messages and by tooling that wants something friendlier than a code.
var codeNames = map[ErrorCode]string{
	ErrS001: "InvalidRoot",
	ErrS002: "UnsupportedControlFlow",
	ErrS003: "UnprovableName",
	ErrS004: "NonReturningFunction",
	ErrS005: "UnsupportedStatement",
	ErrR002: "NameError",
}

// Name returns the symbolic name of the code, or the code itself.
func (c ErrorCode) Name() string {
	if n, ok := codeNames[c]; ok {
		return n
	}
	return string(c)
}

// DiagnosticError is a located, coded error. Every failure in the pipeline is
// reported as one of these.
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	File    string
	Message string
}

func NewError(code ErrorCode, tok token.Token, args ...interface{}) *DiagnosticError {
	tmpl, ok := errorTemplates[code]
	if !ok {
		tmpl = "%v"
	}
	return &DiagnosticError{
		Code:    code,
		Token:   tok,
		Message: fmt.Sprintf(tmpl, args...),
	}
}

func (e *DiagnosticError) Error() string {
	loc := ""
	if e.File != "" {
		loc = e.File + ":"
	}
	if e.Token.Line > 0 {
		loc += fmt.Sprintf("%d:%d: ", e.Token.Line, e.Token.Column)
	} else if loc != "" {
		loc += " "
	}
	return fmt.Sprintf("%serror [%s]: %s", loc, e.Code, e.Message)
}

// Is lets errors.Is match on the code alone: errors.Is(err, diagnostics.Code(ErrS003)).
func (e *DiagnosticError) Is(target error) bool {
	t, ok := target.(*DiagnosticError)
	if !ok {
		return false
	}
	return t.Code == e.Code && (t.Message == "" || t.Message == e.Message)
}

// Code returns a sentinel that matches any DiagnosticError with the given code.
func Code(code ErrorCode) error {
	return &DiagnosticError{Code: code}
}

// HasCode reports whether err is, or wraps, a DiagnosticError with the code.
func HasCode(err error, code ErrorCode) bool {
	var de *DiagnosticError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}
