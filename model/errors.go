// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package model

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies which part of the SDK produced an Error.
type Kind string

// Error kinds.
const (
	KindAuth       Kind = "auth"
	KindConnection Kind = "connection"
	KindServer     Kind = "server"
	KindDocument   Kind = "document"
	KindProject    Kind = "project"
	KindUpload     Kind = "upload"
)

// Code is a machine-checkable reason attached to an Error.
type Code int

// Error codes. Values are unique across kinds.
const (
	CodeUnknown Code = iota

	CodeUsernameNotProvided
	CodePasswordNotProvided

	CodeURLNotProvided
	CodeBadResponse
	CodeUploadFailed

	CodeTransport
	CodeServerMessage

	CodeWrongType
	CodeStringExists
	CodeStringNotExists
	CodeEmptyContent
	CodeUnsupportedType
	CodeNotCreated

	CodeNameNotDefined
	CodeLanguageNotFound

	CodeWrongFileName
	CodeUploadNotSent
)

// Error is returned by every SDK operation that fails for a reason the
// caller may want to inspect.
type Error struct {
	Kind    Kind
	Code    Code
	Message string

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Message, e.cause.Error())
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying failure, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind Kind, code Code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func wrapError(cause error, kind Kind, code Code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message, cause: cause}
}

// AsError extracts an *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsKind reports whether err carries an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := AsError(err)
	return ok && e.Kind == kind
}

// HasCode reports whether err carries an *Error with the given code.
func HasCode(err error, code Code) bool {
	e, ok := AsError(err)
	return ok && e.Code == code
}
