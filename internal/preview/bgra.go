package preview

import "image"

// bgraToNRGBA converts tightly packed 32-bit BGRA rows. Bitmaps whose alpha
// channel is entirely zero predate alpha support and are treated as opaque.
func bgraToNRGBA(pix []byte, width, height int, bottomUp bool) *image.NRGBA {
	stride := width * 4
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	hasAlpha := false
	for i := 3; i < stride*height; i += 4 {
		if pix[i] != 0 {
			hasAlpha = true
			break
		}
	}
	for y := 0; y < height; y++ {
		row := y
		if bottomUp {
			row = height - 1 - y
		}
		src := pix[row*stride:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < width; x++ {
			i := x * 4
			dst[i+0] = src[i+2]
			dst[i+1] = src[i+1]
			dst[i+2] = src[i+0]
			if hasAlpha {
				dst[i+3] = src[i+3]
			} else {
				dst[i+3] = 0xFF
			}
		}
	}
	return img
}
