// Package encoding implements the numeric frame codec: the delta-aware
// varint encoder/decoder used for every handle column in a block — number
// series values, dictionary handles, IPv6 suffixes, and the TimeSeries
// offset column.
//
// # Delta strategies
//
// A frame picks one of four strategies, described by format.DeltaSpec:
//
//   - DeltaNone: each value zigzag+varint encoded on its own. Best for
//     columns with no useful correlation between neighbors (dictionary
//     handles drawn from an unordered interner).
//   - DeltaAuto: the frame encodes both the raw and the delta-from-previous
//     forms and keeps whichever is smaller, recording the choice in a
//     1-byte frame tag. Used for NumberSeries columns, whose value
//     distribution is not known ahead of encoding.
//   - DeltaTryLookback: each value is encoded as a delta against the best
//     match within a small trailing window, trading a per-value lookback
//     index byte for better compression on columns whose values repeat
//     out of strict sequence (e.g. grouped status codes).
//   - DeltaTryConsecutive(n): each value is encoded as a delta against the
//     best of the n values before it, or raw when no such delta is shorter;
//     n=1 is delta-from-previous. Used for TimeSeries, whose per-record
//     offsets are monotonic.
//
// # Wire format
//
// A frame is: [1 byte mode tag][1 byte lookback, only for
// TryConsecutive][varint-encoded values...]. DeltaAuto's tag additionally
// records which of None/delta-from-previous was chosen so the decoder
// knows which reconstruction to apply.
package encoding
