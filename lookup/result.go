package lookup

// Result classifies a single zone's relationship to a query point.
type Result int

const (
	// ResultEnd is the sentinel value that terminates a result list,
	// mirroring the original C library's array-of-structs-with-terminator
	// contract (ZD_LOOKUP_END). Go callers can just use len(results);
	// the sentinel is kept anyway so a Results slice round-trips through
	// the same shape a presentation layer ported from the C API expects.
	ResultEnd Result = iota
	ResultNotInZone
	ResultInZone
	ResultInExcludedZone
	ResultOnBorderVertex
	ResultOnBorderSegment
	ResultParseError
)

func (r Result) String() string {
	switch r {
	case ResultEnd:
		return "END"
	case ResultNotInZone:
		return "NOT_IN_ZONE"
	case ResultInZone:
		return "IN_ZONE"
	case ResultInExcludedZone:
		return "IN_EXCLUDED_ZONE"
	case ResultOnBorderVertex:
		return "ON_BORDER_VERTEX"
	case ResultOnBorderSegment:
		return "ON_BORDER_SEGMENT"
	case ResultParseError:
		return "PARSE_ERROR"
	default:
		return "UNKNOWN"
	}
}

// LookupResultToString renders a Result the way the CLI and presentation
// layers report it.
func LookupResultToString(r Result) string {
	return r.String()
}

// ZoneResult is one surviving zone hit from a Lookup call: its
// classification, the raw metadata byte offset it was grouped under, and
// its materialized field values in declared field order.
type ZoneResult struct {
	Result Result
	MetaID int
	Fields []string
}
