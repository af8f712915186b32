// Package builder ingests ESRI Shapefile/DBF geodata and emits a PLB
// database: metadata normalization, fixed-point quantization, delta
// coalescing, string dedup, and section assembly.
package builder

import (
	"strings"

	"github.com/geozone/zdgeo/format"
)

// countryNameOverrides fills in display names for territories the source
// country attribute table omits — dependent territories and a handful of
// contested or recently-assigned codes.
var countryNameOverrides = map[string]string{
	"CW": "Curaçao",
	"SX": "Sint Maarten",
	"BQ": "Bonaire, Sint Eustatius and Saba",
	"XK": "Kosovo",
	"AX": "Åland Islands",
}

// FieldNames returns the metadata schema for tableType, in the order the
// header declares them and Build emits them.
func FieldNames(tableType format.TableType) []string {
	switch tableType {
	case format.TableTypeTimezone:
		return []string{"TimezoneIdPrefix", "TimezoneId", "CountryAlpha2", "CountryName"}
	case format.TableTypeCountry:
		return []string{"Alpha2", "Alpha3", "Name"}
	default:
		return nil
	}
}

// SplitTimezoneID splits a tzid such as "Europe/Brussels" into its prefix
// (including the trailing slash) and the remainder. A tzid with no slash
// returns an empty prefix and the whole string as id.
func SplitTimezoneID(tzid string) (prefix, id string) {
	idx := strings.IndexByte(tzid, '/')
	if idx < 0 {
		return "", tzid
	}

	return tzid[:idx+1], tzid[idx+1:]
}

// CountryInfo is one row of the external country-code lookup table; the
// builder treats this table as a static-data collaborator supplied by the
// caller rather than bundling one itself.
type CountryInfo struct {
	Alpha2 string
	Alpha3 string
	Name   string
}

// CountryName resolves alpha2 to a display name, preferring the supplied
// directory and falling back to the override map.
func CountryName(alpha2 string, directory map[string]CountryInfo) string {
	if info, ok := directory[alpha2]; ok && info.Name != "" {
		return info.Name
	}

	return countryNameOverrides[alpha2]
}
