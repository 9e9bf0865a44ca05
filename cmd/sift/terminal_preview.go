package main

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
)

// terminalPreviewColumns bounds the width of inline previews.
const terminalPreviewColumns = 64

// renderHalfBlocks draws img with one "▀" per two vertical pixels using
// 24-bit ANSI colours. The image is shrunk to fit maxCols columns.
func renderHalfBlocks(img image.Image, maxCols int) string {
	if img == nil || img.Bounds().Empty() || maxCols <= 0 {
		return ""
	}
	b := img.Bounds()
	if b.Dx() > maxCols {
		img = imaging.Resize(img, maxCols, 0, imaging.Box)
	} else {
		img = imaging.Clone(img)
	}
	b = img.Bounds()

	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			bottom := color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
			if y+1 < b.Max.Y {
				bottom = color.NRGBAModel.Convert(img.At(x, y+1)).(color.NRGBA)
			}
			fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀",
				top.R, top.G, top.B, bottom.R, bottom.G, bottom.B)
		}
		sb.WriteString(ansiReset)
		sb.WriteByte('\n')
	}
	return sb.String()
}
