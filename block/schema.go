package block

// fieldID indexes schemaFields in the block's declared column order. This
// order is authoritative: every writer and reader walks a block's fields
// in exactly this sequence, so changing it would silently reinterpret
// every block written before the change.
type fieldID int

const (
	fieldStatus fieldID = iota
	fieldMethod
	fieldURI
	fieldIP
	fieldPort
	fieldTime
	fieldUA
	fieldReferer
	fieldBody
	fieldHeaders
	fieldHost
	fieldProto
	fieldCount
)

// fieldGate records the schema version range a field's column exists for.
// maxVersion of 0 means "still present in the current schema".
type fieldGate struct {
	name       string
	minVersion uint32
	maxVersion uint32
}

// schemaFields is the authoritative field table: declared order, name, and
// version gate for each column. ua and referer were folded into the
// generic headers column once it was introduced at version 3, so they
// gate out from version 3 on and are absent from any block this binary writes;
// they stay readable here so a version-1 or version-2 block still decodes.
var schemaFields = [fieldCount]fieldGate{
	fieldStatus:  {"status", 1, 0},
	fieldMethod:  {"method", 1, 0},
	fieldURI:     {"uri", 1, 0},
	fieldIP:      {"ip", 1, 0},
	fieldPort:    {"port", 1, 0},
	fieldTime:    {"time", 1, 0},
	fieldUA:      {"ua", 1, 2},
	fieldReferer: {"referer", 1, 2},
	fieldBody:    {"body", 2, 0},
	fieldHeaders: {"headers", 3, 0},
	fieldHost:    {"host", 3, 0},
	fieldProto:   {"proto", 4, 0},
}

func (g fieldGate) activeAt(version uint32) bool {
	if version < g.minVersion {
		return false
	}

	return g.maxVersion == 0 || version <= g.maxVersion
}

// activeFields returns the fields present in a block written at the given
// schema version, in declared column order.
func activeFields(version uint32) []fieldID {
	out := make([]fieldID, 0, fieldCount)

	for i, g := range schemaFields {
		if g.activeAt(version) {
			out = append(out, fieldID(i))
		}
	}

	return out
}
