package preview

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
)

const (
	icoHeaderSize = 6
	icoEntrySize  = 16
	dibHeaderSize = 40
)

var (
	errICOFormat = errors.New("ico: invalid format")
	pngSignature = []byte("\x89PNG\r\n\x1a\n")
)

func init() {
	image.RegisterFormat("ico", "\x00\x00\x01\x00", decodeICO, decodeICOConfig)
}

type icoEntry struct {
	width    int
	height   int
	bitCount int
	size     uint32
	offset   uint32
}

func (e icoEntry) area() int { return e.width * e.height }

// readICO returns the raw file and its largest entry. Ties go to the
// higher bit depth.
func readICO(r io.Reader) ([]byte, icoEntry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, icoEntry{}, err
	}
	if len(data) < icoHeaderSize {
		return nil, icoEntry{}, errICOFormat
	}
	if binary.LittleEndian.Uint16(data[0:]) != 0 || binary.LittleEndian.Uint16(data[2:]) != 1 {
		return nil, icoEntry{}, errICOFormat
	}
	count := int(binary.LittleEndian.Uint16(data[4:]))
	if count == 0 || len(data) < icoHeaderSize+count*icoEntrySize {
		return nil, icoEntry{}, errICOFormat
	}

	var best icoEntry
	found := false
	for i := 0; i < count; i++ {
		raw := data[icoHeaderSize+i*icoEntrySize:]
		entry := icoEntry{
			width:    int(raw[0]),
			height:   int(raw[1]),
			bitCount: int(binary.LittleEndian.Uint16(raw[6:])),
			size:     binary.LittleEndian.Uint32(raw[8:]),
			offset:   binary.LittleEndian.Uint32(raw[12:]),
		}
		if entry.width == 0 {
			entry.width = 256
		}
		if entry.height == 0 {
			entry.height = 256
		}
		if uint64(entry.offset)+uint64(entry.size) > uint64(len(data)) {
			continue
		}
		if !found || entry.area() > best.area() || (entry.area() == best.area() && entry.bitCount > best.bitCount) {
			best = entry
			found = true
		}
	}
	if !found {
		return nil, icoEntry{}, errICOFormat
	}
	return data, best, nil
}

func decodeICO(r io.Reader) (image.Image, error) {
	data, entry, err := readICO(r)
	if err != nil {
		return nil, err
	}
	payload := data[entry.offset : entry.offset+entry.size]
	if bytes.HasPrefix(payload, pngSignature) {
		return png.Decode(bytes.NewReader(payload))
	}
	return decodeDIB(payload)
}

func decodeICOConfig(r io.Reader) (image.Config, error) {
	_, entry, err := readICO(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.NRGBAModel, Width: entry.width, Height: entry.height}, nil
}

// decodeDIB decodes an icon's headerless bitmap. The stored height covers
// the XOR image and the AND mask, so it is halved.
func decodeDIB(payload []byte) (image.Image, error) {
	if len(payload) < dibHeaderSize {
		return nil, errICOFormat
	}
	headerSize := binary.LittleEndian.Uint32(payload[0:])
	width := int(int32(binary.LittleEndian.Uint32(payload[4:])))
	height := int(int32(binary.LittleEndian.Uint32(payload[8:]))) / 2
	bitCount := int(binary.LittleEndian.Uint16(payload[14:]))
	compression := binary.LittleEndian.Uint32(payload[16:])
	colorsUsed := binary.LittleEndian.Uint32(payload[32:])
	if width <= 0 || height <= 0 || headerSize < dibHeaderSize || int(headerSize) > len(payload) {
		return nil, errICOFormat
	}

	if bitCount == 32 && compression == 0 {
		return decodeBGRA(payload[headerSize:], width, height)
	}

	if colorsUsed == 0 && bitCount <= 8 {
		colorsUsed = 1 << bitCount
	}
	pixelOffset := 14 + headerSize + colorsUsed*4

	patched := append([]byte(nil), payload...)
	binary.LittleEndian.PutUint32(patched[8:], uint32(height))
	var buf bytes.Buffer
	buf.WriteString("BM")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(14+len(patched)))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(0))
	_ = binary.Write(&buf, binary.LittleEndian, pixelOffset)
	buf.Write(patched)
	img, err := bmp.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("ico bitmap: %w", err)
	}
	return img, nil
}

// decodeBGRA reads bottom-up 32-bit rows, keeping the alpha channel the
// stock BMP decoder ignores for this header version.
func decodeBGRA(pix []byte, width, height int) (image.Image, error) {
	if len(pix) < width*4*height {
		return nil, errICOFormat
	}
	return bgraToNRGBA(pix, width, height, true), nil
}
