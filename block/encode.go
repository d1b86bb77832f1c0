package block

import (
	"fmt"

	"github.com/s3bk/clog/codec"
	"github.com/s3bk/clog/compress"
	"github.com/s3bk/clog/format"
)

// Encode seals the builder's accumulated records into a complete block
// payload: a Header, followed by one (size descriptor, payload) section
// per field active at the current schema version, in declared order.
//
// quality only affects CompressionZstd (see compress.ZstdCompressor); every
// other compression type ignores it.
func (b *Builder) Encode(ctype format.CompressionType, quality int) ([]byte, error) {
	outer, err := compress.GetCodecWithQuality(ctype, quality)
	if err != nil {
		return nil, fmt.Errorf("block: %w", err)
	}

	header := Header{
		Version:     format.SchemaVersion,
		Start:       b.start,
		Length:      uint32(b.Len()), //nolint:gosec
		Compression: ctype,
	}

	out := header.MarshalBinary()

	for _, f := range activeFields(header.Version) {
		descriptor, payload, err := b.encodeField(f, outer)
		if err != nil {
			return nil, fmt.Errorf("block: %s: %w", schemaFields[f].name, err)
		}

		out = engine.AppendUint32(out, uint32(len(descriptor))) //nolint:gosec
		out = append(out, descriptor...)
		out = engine.AppendUint32(out, uint32(len(payload))) //nolint:gosec
		out = append(out, payload...)
	}

	return out, nil
}

func (b *Builder) encodeField(f fieldID, outer compress.Codec) (descriptor, payload []byte, err error) {
	switch f {
	case fieldStatus:
		return nil, codec.NewNumberSeries[uint16]().Encode(b.status.Slice()), nil
	case fieldMethod:
		p, s, err := b.method.Encode(b.methodH.Slice(), outer)
		return putU32s(s.DictCount, s.HandleLen, s.StringsLen), p, err
	case fieldURI:
		p, s, err := b.uri.Encode(b.uriH.Slice(), outer)
		return putU32s(s.DictCount, s.HandleLen, s.StringsLen), p, err
	case fieldIP:
		p, s := b.ip.Encode(b.ipPrefixH.Slice(), b.ipSuffixH.Slice())
		return putU32s(s.PrefixIdxLen, s.SuffixLen, s.PrefixCount), p, nil
	case fieldPort:
		return nil, codec.NewNumberSeries[uint16]().Encode(b.port.Slice()), nil
	case fieldTime:
		return nil, b.timeCodec.Encode(b.timeH.Slice()), nil
	case fieldUA:
		p, s, err := b.ua.Encode(b.uaH.Slice(), outer)
		return putU32s(s.DictCount, s.HandleLen, s.StringsLen), p, err
	case fieldReferer:
		p, s, err := b.referer.Encode(b.refererH.Slice(), outer)
		return putU32s(s.DictCount, s.HandleLen, s.StringsLen), p, err
	case fieldBody:
		p, s, err := b.body.Encode(b.bodyH.Slice(), outer)
		return putU32s(s.HandleLen, s.OffsetsLen, s.DataLen, s.NumBlobs), p, err
	case fieldHeaders:
		p, s, err := b.headers.Encode(b.headersH.Slice(), outer)
		return putU32s(s.KeysLen, s.ValsLen, s.LengthsLen, s.KeyIdxLen, s.ValIdxLen, s.HandleLen, s.EntryCount), p, err
	case fieldHost:
		p, s, err := b.host.Encode(b.hostH.Slice(), outer)
		return putU32s(s.DictCount, s.HandleLen, s.StringsLen), p, err
	case fieldProto:
		return nil, codec.NewNumberSeries[uint8]().Encode(b.proto.Slice()), nil
	default:
		return nil, nil, fmt.Errorf("unknown field %d", f)
	}
}
