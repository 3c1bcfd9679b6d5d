// Package formats reads and writes the binary vertex path asset format (VPA).
//
// Assets start with a 4-byte magic and a [minor, major] version pair. All
// multi-byte values are little endian; vectors are stored as float64
// triples and quaternions as x, y, z, w.
package formats
