package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/s3bk/clog/errs"
	"github.com/s3bk/clog/format"
)

// Parse compiles filter source text into an Expr tree.
//
// Grammar (informal):
//
//	expr   := or
//	or     := xor ( '|' xor )*
//	xor    := and ( '^' and )*
//	and    := unary ( '&' unary )*
//	unary  := '!' unary | atom
//	atom   := '(' expr ')' | field
//	field  := 'status' numrange | 'port' numrange
//	        | 'method' str | 'uri' str | 'host' str
//	        | 'ip' ipaddr | 'time' timerange | 'proto' ('http'|'https')
//	        | 'header' IDENT '=' str
//	str    := 'r' QUOTED | '~' UINT (QUOTED|LIT) | '*'? (QUOTED|LIT) '*'?
func Parse(s string) (Expr, error) {
	p := &parser{s: s}

	e, err := p.parseOr()
	if err != nil {
		return Expr{}, err
	}

	p.skipSpace()

	if p.pos != len(p.s) {
		return Expr{}, fmt.Errorf("%w: unexpected input at %d", errs.ErrFilterParse, p.pos)
	}

	return e, nil
}

type parser struct {
	s   string
	pos int
}

func (p *parser) parseOr() (Expr, error) {
	first, err := p.parseXor()
	if err != nil {
		return Expr{}, err
	}

	operands := []Expr{first}

	for {
		p.skipSpace()

		if !p.consumeByte('|') {
			break
		}

		next, err := p.parseXor()
		if err != nil {
			return Expr{}, err
		}

		operands = append(operands, next)
	}

	if len(operands) == 1 {
		return operands[0], nil
	}

	return Expr{Comb: CombOr, Operands: operands}, nil
}

func (p *parser) parseXor() (Expr, error) {
	first, err := p.parseAnd()
	if err != nil {
		return Expr{}, err
	}

	operands := []Expr{first}

	for {
		p.skipSpace()

		if !p.consumeByte('^') {
			break
		}

		next, err := p.parseAnd()
		if err != nil {
			return Expr{}, err
		}

		operands = append(operands, next)
	}

	if len(operands) == 1 {
		return operands[0], nil
	}

	return Expr{Comb: CombXor, Operands: operands}, nil
}

func (p *parser) parseAnd() (Expr, error) {
	first, err := p.parseUnary()
	if err != nil {
		return Expr{}, err
	}

	operands := []Expr{first}

	for {
		p.skipSpace()

		if !p.consumeByte('&') {
			break
		}

		next, err := p.parseUnary()
		if err != nil {
			return Expr{}, err
		}

		operands = append(operands, next)
	}

	if len(operands) == 1 {
		return operands[0], nil
	}

	return Expr{Comb: CombAnd, Operands: operands}, nil
}

func (p *parser) parseUnary() (Expr, error) {
	p.skipSpace()

	if p.consumeByte('!') {
		inner, err := p.parseUnary()
		if err != nil {
			return Expr{}, err
		}

		return Expr{Comb: CombNot, Not: &inner}, nil
	}

	return p.parseAtom()
}

func (p *parser) parseAtom() (Expr, error) {
	p.skipSpace()

	if p.consumeByte('(') {
		e, err := p.parseOr()
		if err != nil {
			return Expr{}, err
		}

		p.skipSpace()

		if !p.consumeByte(')') {
			return Expr{}, fmt.Errorf("%w: expected ) at %d", errs.ErrFilterParse, p.pos)
		}

		return e, nil
	}

	word, ok := p.readWord()
	if !ok {
		return Expr{}, fmt.Errorf("%w: expected a field name at %d", errs.ErrFilterParse, p.pos)
	}

	switch word {
	case "status":
		n, err := p.parseNumberFilter()
		return Expr{IsField: true, Field: FieldFilter{Kind: FieldStatus, Number: n}}, err
	case "port":
		n, err := p.parseNumberFilter()
		return Expr{IsField: true, Field: FieldFilter{Kind: FieldPort, Number: n}}, err
	case "method":
		sf, err := p.parseStringFilter()
		return Expr{IsField: true, Field: FieldFilter{Kind: FieldMethod, String: sf}}, err
	case "uri":
		sf, err := p.parseStringFilter()
		return Expr{IsField: true, Field: FieldFilter{Kind: FieldURI, String: sf}}, err
	case "host":
		sf, err := p.parseStringFilter()
		return Expr{IsField: true, Field: FieldFilter{Kind: FieldHost, String: sf}}, err
	case "ip":
		ipf, err := p.parseIPFilter()
		return Expr{IsField: true, Field: FieldFilter{Kind: FieldIP, IP: ipf}}, err
	case "time":
		tf, err := p.parseTimeFilter()
		return Expr{IsField: true, Field: FieldFilter{Kind: FieldTime, Time: tf}}, err
	case "proto":
		pf, err := p.parseProtoFilter()
		return Expr{IsField: true, Field: FieldFilter{Kind: FieldProto, Proto: pf}}, err
	case "header":
		hf, err := p.parseHeaderFilter()
		return Expr{IsField: true, Field: FieldFilter{Kind: FieldHeader, Header: hf}}, err
	default:
		return Expr{}, fmt.Errorf("%w: unknown field %q", errs.ErrFilterParse, word)
	}
}

func (p *parser) parseNumberFilter() (NumberFilter, error) {
	p.skipSpace()

	lo, err := p.parseUint()
	if err != nil {
		return NumberFilter{}, err
	}

	p.skipSpace()

	if p.consumeStr("..") {
		p.skipSpace()

		hi, err := p.parseUint()
		if err != nil {
			return NumberFilter{}, err
		}

		return NumberFilter{Value: lo, High: hi, Range: true}, nil
	}

	return NumberFilter{Value: lo}, nil
}

func (p *parser) parseStringFilter() (StringFilter, error) {
	p.skipSpace()

	if p.consumeByte('~') {
		n, err := p.parseUint()
		if err != nil {
			return StringFilter{}, err
		}

		p.skipSpace()

		text, err := p.parseQuotedOrLit()
		if err != nil {
			return StringFilter{}, err
		}

		return StringFilter{Mode: StringSimilar, Text: text, MaxDist: int(n)}, nil
	}

	if p.pos+1 < len(p.s) && p.s[p.pos] == 'r' && p.s[p.pos+1] == '"' {
		p.pos++

		text, err := p.parseQuoted()
		if err != nil {
			return StringFilter{}, err
		}

		re, err := regexp.Compile(text)
		if err != nil {
			return StringFilter{}, fmt.Errorf("%w: %w", errs.ErrFilterRegex, err)
		}

		return StringFilter{Mode: StringRegex, Regex: re}, nil
	}

	leadingStar := p.consumeByte('*')
	if leadingStar {
		p.skipSpace()
	}

	text, err := p.parseQuotedOrLit()
	if err != nil {
		return StringFilter{}, err
	}

	p.skipSpace()
	trailingStar := p.consumeByte('*')

	switch {
	case leadingStar && trailingStar:
		return StringFilter{Mode: StringContains, Text: text}, nil
	case trailingStar:
		return StringFilter{Mode: StringPrefix, Text: text}, nil
	case leadingStar:
		return StringFilter{Mode: StringSuffix, Text: text}, nil
	default:
		return StringFilter{Mode: StringEquals, Text: text}, nil
	}
}

func (p *parser) parseIPFilter() (IPFilter, error) {
	var octets [4]ipOctet

	p.skipSpace()

	for i := 0; i < 4; i++ {
		if i > 0 {
			p.skipSpace()

			if !p.consumeByte('.') {
				return IPFilter{}, fmt.Errorf("%w: expected . in ip address at %d", errs.ErrFilterParse, p.pos)
			}

			p.skipSpace()
		}

		if p.consumeByte('*') {
			octets[i] = ipOctet{wildcard: true}

			continue
		}

		n, err := p.parseUint()
		if err != nil {
			return IPFilter{}, err
		}

		if n > 255 {
			return IPFilter{}, fmt.Errorf("%w: ip octet out of range", errs.ErrFilterInt)
		}

		octets[i] = ipOctet{value: byte(n)}
	}

	return newIPv4Filter(octets), nil
}

func (p *parser) parseProtoFilter() (ProtoFilter, error) {
	p.skipSpace()

	word, ok := p.readWord()
	if !ok {
		return 0, fmt.Errorf("%w: expected a protocol name at %d", errs.ErrFilterParse, p.pos)
	}

	switch word {
	case "http":
		return ProtoFilter(format.ProtoHTTP), nil
	case "https":
		return ProtoFilter(format.ProtoHTTPS), nil
	default:
		return 0, fmt.Errorf("%w: unknown protocol %q", errs.ErrFilterParse, word)
	}
}

func (p *parser) parseHeaderFilter() (HeaderFilter, error) {
	p.skipSpace()

	name, ok := p.readHeaderName()
	if !ok {
		return HeaderFilter{}, fmt.Errorf("%w: expected a header name at %d", errs.ErrFilterParse, p.pos)
	}

	p.skipSpace()

	if !p.consumeByte('=') {
		return HeaderFilter{}, fmt.Errorf("%w: expected = at %d", errs.ErrFilterParse, p.pos)
	}

	sf, err := p.parseStringFilter()
	if err != nil {
		return HeaderFilter{}, err
	}

	return HeaderFilter{Header: strings.ToLower(name), Filter: sf}, nil
}

// readWord reads a run of letters/digits/underscore, the lexical form
// every keyword takes.
func (p *parser) readWord() (string, bool) {
	start := p.pos

	for p.pos < len(p.s) && isWordByte(p.s[p.pos]) {
		p.pos++
	}

	if p.pos == start {
		return "", false
	}

	return p.s[start:p.pos], true
}

// readHeaderName reads a run of letters/digits/hyphen/underscore, the
// lexical form HTTP header names take (e.g. "Content-Type").
func (p *parser) readHeaderName() (string, bool) {
	start := p.pos

	for p.pos < len(p.s) && (isWordByte(p.s[p.pos]) || p.s[p.pos] == '-') {
		p.pos++
	}

	if p.pos == start {
		return "", false
	}

	return p.s[start:p.pos], true
}

// parseQuotedOrLit reads either a "quoted string" or a bare literal: a
// maximal run of non-whitespace characters, stopping only at whitespace,
// ')' or end of input. A bare literal may contain characters ('?', '=',
// '&', '+', even a literal '*') that would otherwise be structural, since
// there is no unambiguous closing delimiter to rely on; callers that need
// a following '*' to be recognized as a prefix/suffix marker must separate
// it with a space.
func (p *parser) parseQuotedOrLit() (string, error) {
	p.skipSpace()

	if p.pos < len(p.s) && p.s[p.pos] == '"' {
		return p.parseQuoted()
	}

	start := p.pos

	for p.pos < len(p.s) && !isSpace(p.s[p.pos]) && p.s[p.pos] != ')' {
		p.pos++
	}

	if p.pos == start {
		return "", fmt.Errorf("%w: expected a value at %d", errs.ErrFilterParse, p.pos)
	}

	return p.s[start:p.pos], nil
}

func (p *parser) parseQuoted() (string, error) {
	if p.pos >= len(p.s) || p.s[p.pos] != '"' {
		return "", fmt.Errorf("%w: expected a quoted string at %d", errs.ErrFilterParse, p.pos)
	}

	start := p.pos
	p.pos++

	var b strings.Builder

	for p.pos < len(p.s) {
		c := p.s[p.pos]

		switch c {
		case '"':
			p.pos++

			return b.String(), nil
		case '\\':
			p.pos++

			if p.pos >= len(p.s) {
				return "", fmt.Errorf("%w: unterminated escape at %d", errs.ErrFilterParse, p.pos)
			}

			switch p.s[p.pos] {
			case '\\', '"':
				b.WriteByte(p.s[p.pos])
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			default:
				return "", fmt.Errorf("%w: invalid escape at %d", errs.ErrFilterParse, p.pos)
			}

			p.pos++
		default:
			b.WriteByte(c)
			p.pos++
		}
	}

	return "", fmt.Errorf("%w: unterminated string starting at %d", errs.ErrFilterParse, start)
}

func (p *parser) parseUint() (uint64, error) {
	start := p.pos

	for p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
		p.pos++
	}

	if p.pos == start {
		return 0, fmt.Errorf("%w: expected a number at %d", errs.ErrFilterParse, p.pos)
	}

	n, err := strconv.ParseUint(p.s[start:p.pos], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", errs.ErrFilterInt, err)
	}

	return n, nil
}

// parseTimeFilter reads a time range: START..END, START.., ..END or a
// single SPEC (matched as the one-second interval [SPEC, SPEC+1)). Each of
// START/END is either an absolute unix-second integer, "now", or a
// relative offset like "now-1h30m", "-15m" or "+1d".
func (p *parser) parseTimeFilter() (TimeFilter, error) {
	p.skipSpace()

	if p.consumeStr("..") {
		end, err := p.parseTimeSpec()
		if err != nil {
			return TimeFilter{}, err
		}

		return TimeFilter{End: &end}, nil
	}

	start, err := p.parseTimeSpec()
	if err != nil {
		return TimeFilter{}, err
	}

	p.skipSpace()

	if p.consumeStr("..") {
		end, ok, err := p.tryParseTimeSpec()
		if err != nil {
			return TimeFilter{}, err
		}

		if !ok {
			return TimeFilter{Start: &start}, nil
		}

		return TimeFilter{Start: &start, End: &end}, nil
	}

	end := start
	if end.Absolute {
		end.At++
	} else {
		end.Offset++
	}

	return TimeFilter{Start: &start, End: &end}, nil
}

// tryParseTimeSpec parses a TimeSpec unless the cursor is already at a
// combinator, a closing paren or the end of input, in which case it
// reports ok=false without consuming anything: this lets "start.." leave
// the end bound open.
func (p *parser) tryParseTimeSpec() (TimeSpec, bool, error) {
	save := p.pos
	p.skipSpace()

	if p.pos >= len(p.s) {
		p.pos = save

		return TimeSpec{}, false, nil
	}

	switch p.s[p.pos] {
	case ')', '&', '|', '^':
		p.pos = save

		return TimeSpec{}, false, nil
	}

	spec, err := p.parseTimeSpec()
	if err != nil {
		return TimeSpec{}, false, err
	}

	return spec, true, nil
}

func (p *parser) parseTimeSpec() (TimeSpec, error) {
	p.skipSpace()

	if p.consumeStr("now") {
		p.skipSpace()

		if p.pos < len(p.s) && (p.s[p.pos] == '+' || p.s[p.pos] == '-') {
			offset, err := p.parseSignedDuration()
			if err != nil {
				return TimeSpec{}, err
			}

			return TimeSpec{Offset: offset}, nil
		}

		return TimeSpec{Offset: 0}, nil
	}

	if p.pos < len(p.s) && (p.s[p.pos] == '+' || p.s[p.pos] == '-') {
		offset, err := p.parseSignedDuration()
		if err != nil {
			return TimeSpec{}, err
		}

		return TimeSpec{Offset: offset}, nil
	}

	n, err := p.parseUint()
	if err != nil {
		return TimeSpec{}, fmt.Errorf("%w: expected a time value at %d", errs.ErrFilterDate, p.pos)
	}

	return TimeSpec{Absolute: true, At: n}, nil
}

// parseSignedDuration reads a sign followed by one or more NUMBER+UNIT
// spans (e.g. "-1h30m"), returning the total in seconds.
func (p *parser) parseSignedDuration() (int64, error) {
	sign := int64(1)
	if p.s[p.pos] == '-' {
		sign = -1
	}

	p.pos++

	var total int64

	for {
		start := p.pos

		for p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
			p.pos++
		}

		if p.pos == start {
			return 0, fmt.Errorf("%w: expected a duration at %d", errs.ErrFilterDate, p.pos)
		}

		n, err := strconv.ParseInt(p.s[start:p.pos], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", errs.ErrFilterDate, err)
		}

		if p.pos >= len(p.s) {
			return 0, fmt.Errorf("%w: expected a duration unit at %d", errs.ErrFilterDate, p.pos)
		}

		unit := p.s[p.pos]
		p.pos++

		switch unit {
		case 's':
			total += n
		case 'm':
			total += n * 60
		case 'h':
			total += n * 3600
		case 'd':
			total += n * 86400
		default:
			return 0, fmt.Errorf("%w: invalid duration unit %q", errs.ErrFilterDate, unit)
		}

		if p.pos >= len(p.s) || p.s[p.pos] < '0' || p.s[p.pos] > '9' {
			break
		}
	}

	return sign * total, nil
}

func (p *parser) skipSpace() {
	for p.pos < len(p.s) && isSpace(p.s[p.pos]) {
		p.pos++
	}
}

func (p *parser) consumeByte(b byte) bool {
	p.skipSpace()

	if p.pos < len(p.s) && p.s[p.pos] == b {
		p.pos++

		return true
	}

	return false
}

func (p *parser) consumeStr(s string) bool {
	if strings.HasPrefix(p.s[p.pos:], s) {
		p.pos += len(s)

		return true
	}

	return false
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '_'
}
