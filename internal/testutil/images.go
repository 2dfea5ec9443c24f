// Package testutil builds small image fixtures for tests.
package testutil

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
)

func solid() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 60, A: 255})
		}
	}
	return img
}

// JPEG returns a JPEG image. When dateTimeOriginal is non-empty (format
// "2006:01:02 15:04:05") an EXIF APP1 segment carrying it is embedded.
func JPEG(dateTimeOriginal string) []byte {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, solid(), nil); err != nil {
		panic(err)
	}
	raw := buf.Bytes()
	if dateTimeOriginal == "" {
		return raw
	}
	return withExif(raw, tiffWithDate(dateTimeOriginal))
}

// JPEGWithDateTime returns a JPEG whose EXIF block carries only the IFD0
// DateTime tag (0x0132) and no DateTimeOriginal.
func JPEGWithDateTime(dateTime string) []byte {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, solid(), nil); err != nil {
		panic(err)
	}
	return withExif(buf.Bytes(), tiffWithModified(dateTime))
}

// withExif inserts an APP1 segment holding tiff right after the SOI marker.
func withExif(raw, tiff []byte) []byte {
	payload := append([]byte("Exif\x00\x00"), tiff...)
	segment := []byte{0xFF, 0xE1, 0, 0}
	binary.BigEndian.PutUint16(segment[2:], uint16(len(payload)+2))
	segment = append(segment, payload...)

	out := make([]byte, 0, len(raw)+len(segment))
	out = append(out, raw[:2]...)
	out = append(out, segment...)
	out = append(out, raw[2:]...)
	return out
}

func PNG() []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, solid()); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// tiffWithDate lays out a little-endian TIFF block: IFD0 holding only the
// Exif IFD pointer, and an Exif IFD holding DateTimeOriginal.
func tiffWithDate(value string) []byte {
	const (
		ifd0Offset   = 8
		exifOffset   = ifd0Offset + 2 + 12 + 4
		stringOffset = exifOffset + 2 + 12 + 4
	)
	str := append([]byte(value), 0)
	le := binary.LittleEndian

	b := make([]byte, stringOffset+len(str))
	copy(b, []byte("II*\x00"))
	le.PutUint32(b[4:], ifd0Offset)

	le.PutUint16(b[ifd0Offset:], 1)
	entry := b[ifd0Offset+2:]
	le.PutUint16(entry[0:], 0x8769)
	le.PutUint16(entry[2:], 4)
	le.PutUint32(entry[4:], 1)
	le.PutUint32(entry[8:], exifOffset)

	le.PutUint16(b[exifOffset:], 1)
	entry = b[exifOffset+2:]
	le.PutUint16(entry[0:], 0x9003)
	le.PutUint16(entry[2:], 2)
	le.PutUint32(entry[4:], uint32(len(str)))
	le.PutUint32(entry[8:], stringOffset)

	copy(b[stringOffset:], str)
	return b
}

func tiffWithModified(value string) []byte {
	const (
		ifd0Offset   = 8
		stringOffset = ifd0Offset + 2 + 12 + 4
	)
	str := append([]byte(value), 0)
	le := binary.LittleEndian

	b := make([]byte, stringOffset+len(str))
	copy(b, []byte("II*\x00"))
	le.PutUint32(b[4:], ifd0Offset)

	le.PutUint16(b[ifd0Offset:], 1)
	entry := b[ifd0Offset+2:]
	le.PutUint16(entry[0:], 0x0132)
	le.PutUint16(entry[2:], 2)
	le.PutUint32(entry[4:], uint32(len(str)))
	le.PutUint32(entry[8:], stringOffset)

	copy(b[stringOffset:], str)
	return b
}
