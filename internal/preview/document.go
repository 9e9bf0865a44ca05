package preview

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"strconv"
	"strings"
)

var errNoPages = errors.New("document has no pages")

type pageInfo struct {
	pages    int
	width    float64
	height   float64
	rotation int
}

type documentDecoder struct {
	pdfinfo  string
	pdftoppm string
	maxZoom  float64
	box      box
	run      commandRunner
}

func newDocumentDecoder(opts Options) *documentDecoder {
	return &documentDecoder{
		pdfinfo:  opts.Pdfinfo,
		pdftoppm: opts.Pdftoppm,
		maxZoom:  opts.MaxDocumentZoom,
		box:      opts.mediaBox(),
		run:      runCommand,
	}
}

func (d *documentDecoder) Decode(ctx context.Context, path string) (image.Image, error) {
	out, err := d.run(ctx, d.pdfinfo, path)
	if err != nil {
		return nil, err
	}
	info, err := parsePDFInfo(out)
	if err != nil {
		return nil, err
	}
	if info.pages == 0 {
		return nil, errNoPages
	}

	zoom := documentZoom(info, d.box, d.maxZoom)
	dpi := strconv.FormatFloat(72*zoom, 'f', 2, 64)
	rendered, err := d.run(ctx, d.pdftoppm, "-f", "1", "-l", "1", "-r", dpi, "-png", "-singlefile", path)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(rendered))
	if err != nil {
		return nil, fmt.Errorf("decode rendered page: %w", err)
	}
	return fitWithin(flatten(img), d.box), nil
}

// documentZoom scales the first page into the box without exceeding maxZoom.
func documentZoom(info pageInfo, bounds box, maxZoom float64) float64 {
	width, height := info.width, info.height
	if info.rotation == 90 || info.rotation == 270 {
		width, height = height, width
	}
	zoom := maxZoom
	if width > 0 {
		zoom = math.Min(zoom, float64(bounds.width)/width)
	}
	if height > 0 {
		zoom = math.Min(zoom, float64(bounds.height)/height)
	}
	return zoom
}

// parsePDFInfo reads the page count and first page geometry from pdfinfo.
func parsePDFInfo(out []byte) (pageInfo, error) {
	var info pageInfo
	sawPages := false
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "Pages":
			n, err := strconv.Atoi(value)
			if err != nil {
				return pageInfo{}, fmt.Errorf("pdfinfo pages %q: %w", value, err)
			}
			info.pages = n
			sawPages = true
		case "Page size":
			// "612 x 792 pts (letter)"
			fields := strings.Fields(value)
			if len(fields) >= 3 && fields[1] == "x" {
				info.width, _ = strconv.ParseFloat(fields[0], 64)
				info.height, _ = strconv.ParseFloat(fields[2], 64)
			}
		case "Page rot":
			info.rotation, _ = strconv.Atoi(value)
		}
	}
	if err := scanner.Err(); err != nil {
		return pageInfo{}, err
	}
	if !sawPages {
		return pageInfo{}, errors.New("pdfinfo: page count missing")
	}
	return info, nil
}
