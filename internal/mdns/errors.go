// Package mdns decodes Multicast DNS (RFC 6762) messages from raw UDP
// payloads into a strongly-typed representation of the header, question
// section, and answer section.
//
// Standards Compliance:
//
//   - RFC 1035: Domain Names - Implementation and Specification (wire format, name compression)
//   - RFC 6762: Multicast DNS (unicast-response / cache-flush bit masking)
//
// Error Handling:
//
// Every specific sentinel below wraps the root ErrDecode sentinel, and
// call sites wrap the specific sentinel again with fmt.Errorf("...: %w", err)
// for positional context. So callers can test the precise failure kind
// with errors.Is against a specific sentinel, or against ErrDecode to
// catch any decode failure regardless of kind.
//
// Decoding is atomic: a malformed message never yields a partially
// populated Message. The decoder neither retries nor logs; the caller
// decides whether to drop the packet and continue.
package mdns

import (
	"errors"
	"fmt"
)

// ErrDecode is the root sentinel for every mDNS decode failure.
var ErrDecode = errors.New("mdns: decode error")

var (
	// ErrTruncated indicates a primitive read went past the end of the buffer.
	ErrTruncated = fmt.Errorf("%w: truncated message", ErrDecode)

	// ErrBadPointer indicates a name compression pointer was out of range,
	// used reserved label tag bits, or exceeded the pointer-chase depth bound.
	ErrBadPointer = fmt.Errorf("%w: bad compression pointer", ErrDecode)

	// ErrBadLabel indicates a label was empty mid-name or not valid UTF-8.
	ErrBadLabel = fmt.Errorf("%w: bad label", ErrDecode)

	// ErrUnknownRecordType indicates a numeric record type with no known RecordType mapping.
	ErrUnknownRecordType = fmt.Errorf("%w: unknown record type", ErrDecode)

	// ErrUnknownClass indicates a masked class value other than IN or ANY.
	ErrUnknownClass = fmt.Errorf("%w: unknown query class", ErrDecode)

	// ErrRDataLengthMismatch indicates a fixed-length record type whose
	// declared rdlength disagrees with its defined size.
	ErrRDataLengthMismatch = fmt.Errorf("%w: rdata length mismatch", ErrDecode)
)
