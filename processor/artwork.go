package processor

import (
	"bytes"
	"errors"
	"image"
	"image/draw"
	"image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp"
)

const (
	DefaultArtworkSize = 500
	artworkQuality     = 90
)

// Artwork normalizes cover images to square JPEG blobs
// no bigger than Size pixels per side
type Artwork struct {
	Size int
}

func (Artwork) Applies(object interface{}) bool {
	_, ok := object.(*[]byte)
	return ok
}

func (artwork Artwork) Do(object interface{}) error {
	data, ok := object.(*[]byte)
	if !ok {
		return errors.New("artwork processor expects a byte blob")
	}

	source, _, err := image.Decode(bytes.NewReader(*data))
	if err != nil {
		return err
	}

	var (
		bounds = source.Bounds()
		side   = bounds.Dx()
	)
	if bounds.Dy() < side {
		side = bounds.Dy()
	}
	if side == 0 {
		return errors.New("artwork has no area")
	}

	// center crop
	var cropped image.Image = source
	if bounds.Dx() != bounds.Dy() {
		square := image.NewRGBA(image.Rect(0, 0, side, side))
		draw.Draw(square, square.Bounds(), source, image.Pt(
			bounds.Min.X+(bounds.Dx()-side)/2,
			bounds.Min.Y+(bounds.Dy()-side)/2,
		), draw.Src)
		cropped = square
	}

	size := artwork.Size
	if size <= 0 {
		size = DefaultArtworkSize
	}
	if side > size {
		cropped = resize.Resize(uint(size), uint(size), cropped, resize.Lanczos3)
	}

	var buffer bytes.Buffer
	if err := jpeg.Encode(&buffer, cropped, &jpeg.Options{Quality: artworkQuality}); err != nil {
		return err
	}
	*data = buffer.Bytes()
	return nil
}
