package preview

import (
	"context"
	"fmt"
	"image"
	"strconv"

	"sift/internal/media/ffprobe"
)

type videoDecoder struct {
	ffmpeg  string
	ffprobe string
	box     box
	probe   func(ctx context.Context, binary, path string) (ffprobe.Result, error)
	run     commandRunner
}

func newVideoDecoder(opts Options) *videoDecoder {
	return &videoDecoder{
		ffmpeg:  opts.FFmpeg,
		ffprobe: opts.FFprobe,
		box:     opts.mediaBox(),
		probe:   ffprobe.Inspect,
		run:     runCommand,
	}
}

func (d *videoDecoder) Decode(ctx context.Context, path string) (image.Image, error) {
	probe, err := d.probe(ctx, d.ffprobe, path)
	if err != nil {
		return nil, err
	}
	stream, err := probe.FirstVideoStream()
	if err != nil {
		return nil, err
	}

	frame, err := d.run(ctx, d.ffmpeg,
		"-v", "error",
		"-nostdin",
		"-noautorotate",
		"-i", path,
		"-map", "0:"+strconv.Itoa(stream.Index),
		"-frames:v", "1",
		"-f", "rawvideo",
		"-pix_fmt", "bgr24",
		"-",
	)
	if err != nil {
		return nil, err
	}
	want := stream.Width * stream.Height * 3
	if len(frame) < want {
		return nil, fmt.Errorf("short frame: got %d bytes, want %d", len(frame), want)
	}
	return fitWithin(bgrToNRGBA(frame, stream.Width, stream.Height), d.box), nil
}

// bgrToNRGBA swaps packed 24-bit BGR into an opaque image.
func bgrToNRGBA(frame []byte, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		src := frame[y*width*3:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < width; x++ {
			dst[x*4+0] = src[x*3+2]
			dst[x*4+1] = src[x*3+1]
			dst[x*4+2] = src[x*3+0]
			dst[x*4+3] = 0xFF
		}
	}
	return img
}
