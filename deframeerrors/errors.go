// Copyright 2025 The packetd Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package deframeerrors defines the deframer's error taxonomy.
//
// Each sentinel is both errors.Is-comparable and carries a gRPC status code,
// so a caller terminating an RPC can go straight from a deframe error to the
// status it should return without its own mapping table.
package deframeerrors

import (
	"fmt"

	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
)

// Kind identifies an error category independent of its message.
type Kind uint8

const (
	// KindResourceExhausted means a declared or decompressed payload length
	// exceeded the configured limit.
	KindResourceExhausted Kind = iota

	// KindInternal means a frame advertised compression but no decompressor
	// was configured to handle it, or a configured Decompressor failed for a
	// reason other than exceeding the size limit (e.g. a corrupt or
	// truncated compressed stream). It is this package's catch-all Kind.
	KindInternal
)

func (k Kind) grpcCode() codes.Code {
	switch k {
	case KindResourceExhausted:
		return codes.ResourceExhausted
	case KindInternal:
		return codes.Internal
	default:
		return codes.Unknown
	}
}

// Error is the concrete error type returned across deframer boundaries.
type Error struct {
	kind  Kind
	msg   string
	cause error
}

func (e *Error) Error() string { return e.msg }

// Unwrap exposes the original cause (if any) so errors.Is/As can keep
// traversing past the kind classification, e.g. to inspect a corrupt-stream
// error a Decompressor returned before Wrap tagged it.
func (e *Error) Unwrap() error { return e.cause }

// GRPCCode returns the gRPC status code this error kind maps to.
func (e *Error) GRPCCode() codes.Code { return e.kind.grpcCode() }

// Is supports errors.Is(err, ErrResourceExhausted) / errors.Is(err, ErrInternal)
// by comparing kinds rather than identity, so wrapped instances still match.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.kind == t.kind
}

// Sentinels usable with errors.Is. Their messages are placeholders; real
// occurrences carry a specific message built by ResourceExhaustedf,
// Internalf or Wrap below, but still
// compare equal via Is because it only inspects kind.
var (
	// ErrResourceExhausted is the sentinel for KindResourceExhausted.
	ErrResourceExhausted = &Error{kind: KindResourceExhausted, msg: "deframe: resource exhausted"}

	// ErrInternal is the sentinel for KindInternal.
	ErrInternal = &Error{kind: KindInternal, msg: "deframe: internal error"}
)

// ResourceExhaustedf builds a KindResourceExhausted error with a formatted message.
func ResourceExhaustedf(format string, args ...any) error {
	return &Error{kind: KindResourceExhausted, msg: fmt.Sprintf("deframe: "+format, args...)}
}

// Internalf builds a KindInternal error with a formatted message.
func Internalf(format string, args ...any) error {
	return &Error{kind: KindInternal, msg: fmt.Sprintf("deframe: "+format, args...)}
}

// Wrap attaches call-site context (and a stack trace, via pkg/errors) to an
// error surfaced from a Decompressor. If err already carries a Kind (e.g. a
// codec rejected an oversized declared length with ResourceExhaustedf),
// that Kind is preserved; otherwise the wrapped error defaults to
// KindInternal, since an unclassified Decompressor failure (a corrupt or
// truncated stream) is this package's catch-all gRPC status. The original
// error stays reachable via errors.Is/As through Unwrap.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	kind := KindInternal
	var de *Error
	if errors.As(err, &de) {
		kind = de.kind
	}

	cause := errors.Wrap(err, message)
	return &Error{kind: kind, msg: cause.Error(), cause: cause}
}
