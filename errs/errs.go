// Package errs defines the sentinel errors shared by clog's codecs, block
// framing, collector backend and client mirror.
//
// Every exported error here is meant to be compared with errors.Is; callers
// that need more context should wrap it with fmt.Errorf("...: %w", err).
package errs

import "errors"

var (
	// ErrInvalidHeaderSize is returned when a block or wire header is not
	// exactly the expected number of bytes.
	ErrInvalidHeaderSize = errors.New("clog: invalid header size")

	// ErrVersionTooNew is returned when a block's schema version exceeds
	// the version this binary was compiled with.
	ErrVersionTooNew = errors.New("clog: block schema version too new")

	// ErrTruncated is returned when a codec or frame reader runs out of
	// input before decoding the expected number of elements.
	ErrTruncated = errors.New("clog: truncated input")

	// ErrInvalidHandle is returned when a decoded handle does not resolve
	// against its column's dictionary or arena.
	ErrInvalidHandle = errors.New("clog: handle out of range")

	// ErrInvalidSizeDescriptor is returned when a column's size descriptor
	// is internally inconsistent (e.g. negative or overflowing lengths).
	ErrInvalidSizeDescriptor = errors.New("clog: invalid size descriptor")

	// ErrUnknownCompression is returned when a compression type byte does
	// not match any registered codec.
	ErrUnknownCompression = errors.New("clog: unknown compression type")

	// ErrChannelClosed is returned when a send to a closed channel/peer is
	// attempted (subscriber gone, manager task gone).
	ErrChannelClosed = errors.New("clog: channel closed")

	// ErrNotAttached is returned when a client command requires an
	// attached subscription that does not exist.
	ErrNotAttached = errors.New("clog: not attached")

	// ErrLagged names a subscriber whose live-row channel overflowed. The
	// collector's send path detects this as a failed non-blocking send and
	// does not return this error.
	ErrLagged = errors.New("clog: subscriber lagged")

	// ErrUnknownPacketType is returned when a wire frame's leading byte
	// does not match any PacketType.
	ErrUnknownPacketType = errors.New("clog: unknown packet type")

	// ErrFilterParse is the umbrella sentinel for filter grammar errors;
	// it is always wrapped with the offending token or position.
	ErrFilterParse = errors.New("clog: filter parse error")

	// ErrFilterRegex is returned when a filter's r"..." atom fails to
	// compile as a regular expression.
	ErrFilterRegex = errors.New("clog: invalid filter regex")

	// ErrFilterDate is returned when a filter's date/time literal cannot
	// be parsed.
	ErrFilterDate = errors.New("clog: invalid filter date")

	// ErrFilterInt is returned when a filter's numeric literal overflows
	// its target width.
	ErrFilterInt = errors.New("clog: filter integer out of range")
)
