package wire

import (
	"net"
	"time"

	"github.com/s3bk/clog/errs"
	"github.com/s3bk/clog/format"
	"github.com/s3bk/clog/record"
)

// EncodeRow serializes a single RequestEntry as the flat, uncompressed body
// of a Row packet: one record appended to the receiver's open block as it
// arrives, as opposed to a Batch packet's columnar encoding of many.
func EncodeRow(e record.RequestEntry) []byte {
	b := make([]byte, 0, 64+len(e.Body)+len(e.URI))

	b = engine.AppendUint16(b, e.Status)
	b = appendString(b, e.Method)
	b = appendString(b, e.URI)
	b = append(b, to16(e.IP)...)
	b = engine.AppendUint16(b, e.Port)
	b = engine.AppendUint64(b, e.UnixSeconds())
	b = appendOptString(b, e.UA)
	b = appendOptString(b, e.Referer)
	b = appendBytes(b, e.Body)
	b = appendString(b, record.FormatHeaderText(e.Headers))
	b = appendString(b, e.Host)
	b = engine.AppendUint16(b, uint16(e.Proto))

	return b
}

// DecodeRow parses a Row packet body produced by EncodeRow.
func DecodeRow(data []byte) (record.RequestEntry, error) {
	var e record.RequestEntry

	status, data, err := takeUint16(data)
	if err != nil {
		return e, err
	}

	e.Status = status

	e.Method, data, err = takeString(data)
	if err != nil {
		return e, err
	}

	e.URI, data, err = takeString(data)
	if err != nil {
		return e, err
	}

	if len(data) < net.IPv6len {
		return e, errs.ErrTruncated
	}

	e.IP = net.IP(append(net.IP(nil), data[:net.IPv6len]...))
	data = data[net.IPv6len:]

	e.Port, data, err = takeUint16(data)
	if err != nil {
		return e, err
	}

	secs, data, err := takeUint64(data)
	if err != nil {
		return e, err
	}

	e.Time = time.Unix(int64(secs), 0) //nolint:gosec

	e.UA, data, err = takeOptString(data)
	if err != nil {
		return e, err
	}

	e.Referer, data, err = takeOptString(data)
	if err != nil {
		return e, err
	}

	e.Body, data, err = takeBytes(data)
	if err != nil {
		return e, err
	}

	headerText, data, err := takeString(data)
	if err != nil {
		return e, err
	}

	e.Headers = record.ParseHeaderText(headerText)

	e.Host, data, err = takeString(data)
	if err != nil {
		return e, err
	}

	proto, _, err := takeUint16(data)
	if err != nil {
		return e, err
	}

	e.Proto = format.Protocol(proto)

	return e, nil
}

func to16(ip net.IP) []byte {
	if v6 := ip.To16(); v6 != nil {
		return append([]byte(nil), v6...)
	}

	return make([]byte, net.IPv6len)
}

func appendString(b []byte, s string) []byte {
	b = engine.AppendUint32(b, uint32(len(s))) //nolint:gosec
	return append(b, s...)
}

func appendBytes(b []byte, v []byte) []byte {
	b = engine.AppendUint32(b, uint32(len(v))) //nolint:gosec
	return append(b, v...)
}

func appendOptString(b []byte, s *string) []byte {
	if s == nil {
		return append(b, 0)
	}

	return appendString(append(b, 1), *s)
}

func takeUint16(data []byte) (uint16, []byte, error) {
	if len(data) < 2 {
		return 0, nil, errs.ErrTruncated
	}

	return engine.Uint16(data), data[2:], nil
}

func takeUint64(data []byte) (uint64, []byte, error) {
	if len(data) < 8 {
		return 0, nil, errs.ErrTruncated
	}

	return engine.Uint64(data), data[8:], nil
}

func takeString(data []byte) (string, []byte, error) {
	v, rest, err := takeBytes(data)
	if err != nil {
		return "", nil, err
	}

	return string(v), rest, nil
}

func takeBytes(data []byte) ([]byte, []byte, error) {
	if len(data) < 4 {
		return nil, nil, errs.ErrTruncated
	}

	n := engine.Uint32(data)
	data = data[4:]

	if uint32(len(data)) < n { //nolint:gosec
		return nil, nil, errs.ErrTruncated
	}

	return data[:n], data[n:], nil
}

func takeOptString(data []byte) (*string, []byte, error) {
	if len(data) < 1 {
		return nil, nil, errs.ErrTruncated
	}

	present := data[0]
	data = data[1:]

	if present == 0 {
		return nil, data, nil
	}

	s, rest, err := takeString(data)
	if err != nil {
		return nil, nil, err
	}

	return &s, rest, nil
}
