package block

import (
	"fmt"
	"time"

	"github.com/s3bk/clog/codec"
	"github.com/s3bk/clog/compress"
	"github.com/s3bk/clog/errs"
	"github.com/s3bk/clog/format"
	"github.com/s3bk/clog/record"
)

// Block is a decoded, read-only sealed block: a Header plus every active
// field's reconstructed codec and per-record handles. Fields absent from
// this block's schema version are left nil and read back as their zero
// value.
type Block struct {
	Header Header

	status []uint16

	method  *codec.HashStrings
	methodH []uint32

	uri  *codec.HashStrings
	uriH []uint32

	ip        *codec.HashIpv6
	ipPrefixH []uint32
	ipSuffixH []uint32

	port []uint16

	timeCodec  *codec.TimeSeries
	timeValues []uint64

	ua  *codec.HashStringsOpt
	uaH []uint32

	referer  *codec.HashStringsOpt
	refererH []uint32

	body  *codec.DataSeries
	bodyH []uint32

	headers  *codec.HeaderMap
	headersH []uint32

	host  *codec.HashStrings
	hostH []uint32

	proto []uint8
}

// Len returns the number of records in the block.
func (blk *Block) Len() int { return int(blk.Header.Length) }

// Decode parses a complete block payload produced by Builder.Encode.
func Decode(data []byte) (*Block, error) {
	header, rest, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	outer, err := compress.GetCodec(header.Compression)
	if err != nil {
		return nil, fmt.Errorf("block: %w", err)
	}

	blk := &Block{Header: header}
	n := int(header.Length)

	for _, f := range activeFields(header.Version) {
		descriptor, payload, tail, err := readSection(rest)
		if err != nil {
			return nil, fmt.Errorf("block: %s: %w", schemaFields[f].name, err)
		}

		rest = tail

		if err := blk.decodeField(f, descriptor, payload, outer, n); err != nil {
			return nil, fmt.Errorf("block: %s: %w", schemaFields[f].name, err)
		}
	}

	return blk, nil
}

func readSection(data []byte) (descriptor, payload, rest []byte, err error) {
	if len(data) < 4 {
		return nil, nil, nil, errs.ErrTruncated
	}

	dLen := engine.Uint32(data)
	data = data[4:]

	if uint32(len(data)) < dLen { //nolint:gosec
		return nil, nil, nil, errs.ErrTruncated
	}

	descriptor, data = data[:dLen], data[dLen:]

	if len(data) < 4 {
		return nil, nil, nil, errs.ErrTruncated
	}

	pLen := engine.Uint32(data)
	data = data[4:]

	if uint32(len(data)) < pLen { //nolint:gosec
		return nil, nil, nil, errs.ErrTruncated
	}

	payload, data = data[:pLen], data[pLen:]

	return descriptor, payload, data, nil
}

func (blk *Block) decodeField(f fieldID, descriptor, payload []byte, outer compress.Codec, n int) error {
	switch f {
	case fieldStatus:
		v, err := codec.DecodeNumberSeries[uint16](payload, n)
		blk.status = v

		return err
	case fieldMethod:
		s, err := parseU32s(descriptor, 3)
		if err != nil {
			return err
		}

		m, h, err := codec.DecodeHashStrings(payload, outer, n, codec.HashStringsSize{DictCount: s[0], HandleLen: s[1], StringsLen: s[2]})
		blk.method, blk.methodH = m, h

		return err
	case fieldURI:
		s, err := parseU32s(descriptor, 3)
		if err != nil {
			return err
		}

		m, h, err := codec.DecodeHashStrings(payload, outer, n, codec.HashStringsSize{DictCount: s[0], HandleLen: s[1], StringsLen: s[2]})
		blk.uri, blk.uriH = m, h

		return err
	case fieldIP:
		s, err := parseU32s(descriptor, 3)
		if err != nil {
			return err
		}

		ip, prefixIdx, suffix, err := codec.DecodeHashIpv6(payload, n, codec.HashIpv6Size{PrefixIdxLen: s[0], SuffixLen: s[1], PrefixCount: s[2]})
		blk.ip, blk.ipPrefixH, blk.ipSuffixH = ip, prefixIdx, suffix

		return err
	case fieldPort:
		v, err := codec.DecodeNumberSeries[uint16](payload, n)
		blk.port = v

		return err
	case fieldTime:
		t, values, err := codec.DecodeTimeSeries(payload, n)
		blk.timeCodec, blk.timeValues = t, values

		return err
	case fieldUA:
		s, err := parseU32s(descriptor, 3)
		if err != nil {
			return err
		}

		m, h, err := codec.DecodeHashStringsOpt(payload, outer, n, codec.HashStringsSize{DictCount: s[0], HandleLen: s[1], StringsLen: s[2]})
		blk.ua, blk.uaH = m, h

		return err
	case fieldReferer:
		s, err := parseU32s(descriptor, 3)
		if err != nil {
			return err
		}

		m, h, err := codec.DecodeHashStringsOpt(payload, outer, n, codec.HashStringsSize{DictCount: s[0], HandleLen: s[1], StringsLen: s[2]})
		blk.referer, blk.refererH = m, h

		return err
	case fieldBody:
		s, err := parseU32s(descriptor, 4)
		if err != nil {
			return err
		}

		d, h, err := codec.DecodeDataSeries(payload, outer, n, codec.DataSeriesSize{HandleLen: s[0], OffsetsLen: s[1], DataLen: s[2], NumBlobs: s[3]})
		blk.body, blk.bodyH = d, h

		return err
	case fieldHeaders:
		s, err := parseU32s(descriptor, 7)
		if err != nil {
			return err
		}

		hm, h, err := codec.DecodeHeaderMap(payload, outer, n, codec.HeaderMapSize{
			KeysLen: s[0], ValsLen: s[1], LengthsLen: s[2],
			KeyIdxLen: s[3], ValIdxLen: s[4], HandleLen: s[5], EntryCount: s[6],
		})
		blk.headers, blk.headersH = hm, h

		return err
	case fieldHost:
		s, err := parseU32s(descriptor, 3)
		if err != nil {
			return err
		}

		m, h, err := codec.DecodeHashStrings(payload, outer, n, codec.HashStringsSize{DictCount: s[0], HandleLen: s[1], StringsLen: s[2]})
		blk.host, blk.hostH = m, h

		return err
	case fieldProto:
		v, err := codec.DecodeNumberSeries[uint8](payload, n)
		blk.proto = v

		return err
	default:
		return fmt.Errorf("unknown field %d", f)
	}
}

// Get reconstructs the i-th record. Fields not present at this block's
// schema version come back zero-valued.
func (blk *Block) Get(i int) (record.RequestEntry, bool) {
	if i < 0 || i >= blk.Len() {
		return record.RequestEntry{}, false
	}

	var e record.RequestEntry

	if blk.status != nil {
		e.Status = blk.status[i]
	}

	if blk.method != nil {
		e.Method, _ = blk.method.Get(blk.methodH[i])
	}

	if blk.uri != nil {
		e.URI, _ = blk.uri.Get(blk.uriH[i])
	}

	if blk.ip != nil {
		e.IP, _ = blk.ip.Get(blk.ipPrefixH[i], blk.ipSuffixH[i])
	}

	if blk.port != nil {
		e.Port = blk.port[i]
	}

	if blk.timeCodec != nil {
		e.Time = time.Unix(int64(blk.timeValues[i]), 0) //nolint:gosec
	}

	if blk.ua != nil {
		e.UA, _ = blk.ua.Get(blk.uaH[i])
	}

	if blk.referer != nil {
		e.Referer, _ = blk.referer.Get(blk.refererH[i])
	}

	if blk.body != nil {
		e.Body, _ = blk.body.Get(blk.bodyH[i])
	}

	if blk.headers != nil {
		pairs, _ := blk.headers.Get(blk.headersH[i])
		e.Headers = make([]record.HeaderPair, len(pairs))

		for j, p := range pairs {
			e.Headers[j] = record.HeaderPair{Key: p.Key, Value: p.Value}
		}
	}

	if blk.host != nil {
		e.Host, _ = blk.host.Get(blk.hostH[i])
	}

	if blk.proto != nil {
		e.Proto = format.Protocol(blk.proto[i])
	}

	return e, true
}
