// Package codec implements the per-field column codecs a block uses to turn
// a run of RequestEntry values into compact column pages and back.
//
// Each codec follows the same shape: Add appends one record's value and
// returns a handle stored in that field's struct-of-arrays column; Encode
// walks the accumulated handles (plus whatever auxiliary dictionary state
// the codec built up) into the bytes a block page stores; the matching
// Decode function reverses it given the page bytes, a record count, and
// that codec's size descriptor.
//
// # Codecs
//
//   - NumberSeries[T]: a bare numeric column (status, port, proto) with no
//     auxiliary state; the handle IS the value.
//   - TimeSeries: numeric column offset by the first non-zero value seen,
//     so small per-record deltas stay in a narrower range.
//   - HashStrings: a deduplicating string dictionary (method, uri, host).
//   - HashStringsOpt: HashStrings plus a reserved handle for an absent
//     value (ua, referer).
//   - DataSeries: a concatenated byte-blob column with an absent bit
//     (body).
//   - HashIpv6: a 128-bit address split into a deduplicated 96-bit prefix
//     table plus a per-record 32-bit suffix (ip).
//   - HeaderMap: an interned, deduplicated set of key/value pairs per
//     record (headers).
package codec
