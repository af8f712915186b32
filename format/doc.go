// Package format defines the on-disk layout of a PLB database: the header,
// the bounding-box index, and the polygon vertex stream codec. The
// metadata section's string encoding lives in package strtab; format calls
// into it rather than duplicating it.
package format

/* PLB file layout

	+--------------------------------+
	|             Header             |  magic, table type, version,
	|                                 |  precision, field names, notice,
	|                                 |  section sizes
	+--------------------------------+
	|          BBox Index            |  one record per polygon, sorted
	|                                 |  ascending by minLatFP
	+--------------------------------+
	|            Metadata            |  deduplicated field-value strings
	+--------------------------------+
	|          Polygon Data          |  numVertices + delta-coded vertices
	+--------------------------------+

* All multi-byte header/index/polygon integers are varints (no fixed-width
  fields to byte-order), so the format itself has no endianness.
* String bytes (header field names, notice, metadata values) are masked
  with XOR 0x80 on disk; see package strtab.
* dataOffset + dataSize must equal the file length.
*/
