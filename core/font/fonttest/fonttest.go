/*
Package fonttest provides font fixtures for tests.

Fixtures are derived from the Go fonts, which are part of
golang.org/x/image. WOFF fixtures are created on the fly by wrapping the
tables of a TrueType font into an (uncompressed) WOFF container.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fonttest

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Regular returns the Go Regular TrueType font.
func Regular() []byte {
	return goregular.TTF
}

// Mono returns the Go Mono TrueType font.
func Mono() []byte {
	return gomono.TTF
}

// WOFF wraps the tables of a TrueType or OpenType font into a WOFF 1.0
// container. Tables are stored uncompressed, which the WOFF format permits.
func WOFF(sfnt []byte) ([]byte, error) {
	if len(sfnt) < 12 {
		return nil, fmt.Errorf("font too short")
	}
	numTables := int(binary.BigEndian.Uint16(sfnt[4:6]))
	if len(sfnt) < 12+16*numTables {
		return nil, fmt.Errorf("truncated table directory")
	}
	type table struct {
		tag, checksum, offset, length uint32
	}
	tables := make([]table, numTables)
	totalSfntSize := uint32(12 + 16*numTables)
	for i := range tables {
		rec := sfnt[12+16*i:]
		tables[i] = table{
			tag:      binary.BigEndian.Uint32(rec[0:4]),
			checksum: binary.BigEndian.Uint32(rec[4:8]),
			offset:   binary.BigEndian.Uint32(rec[8:12]),
			length:   binary.BigEndian.Uint32(rec[12:16]),
		}
		if int(tables[i].offset+tables[i].length) > len(sfnt) {
			return nil, fmt.Errorf("table %d exceeds font data", i)
		}
		totalSfntSize += pad4(tables[i].length)
	}
	const headerSize, entrySize = 44, 20
	offset := uint32(headerSize + entrySize*numTables)
	woff := make([]byte, offset, int(offset+totalSfntSize))
	for i, t := range tables {
		entry := woff[headerSize+entrySize*i:]
		binary.BigEndian.PutUint32(entry[0:4], t.tag)
		binary.BigEndian.PutUint32(entry[4:8], offset)
		binary.BigEndian.PutUint32(entry[8:12], t.length) // compLength == origLength: uncompressed
		binary.BigEndian.PutUint32(entry[12:16], t.length)
		binary.BigEndian.PutUint32(entry[16:20], t.checksum)
		woff = append(woff, sfnt[t.offset:t.offset+t.length]...)
		for p := t.length; p < pad4(t.length); p++ {
			woff = append(woff, 0)
		}
		offset += pad4(t.length)
	}
	copy(woff[0:4], "wOFF")
	copy(woff[4:8], sfnt[0:4]) // flavor
	binary.BigEndian.PutUint32(woff[8:12], uint32(len(woff)))
	binary.BigEndian.PutUint16(woff[12:14], uint16(numTables))
	binary.BigEndian.PutUint32(woff[16:20], totalSfntSize)
	binary.BigEndian.PutUint16(woff[20:22], 1) // major version
	return woff, nil
}

// MustWOFF is like WOFF, but panics on error.
func MustWOFF(sfnt []byte) []byte {
	woff, err := WOFF(sfnt)
	if err != nil {
		panic(err)
	}
	return woff
}

func pad4(n uint32) uint32 {
	return (n + 3) &^ 3
}
