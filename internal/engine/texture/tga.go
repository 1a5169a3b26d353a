package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	tgaTrueColor = 2
	tgaRLE       = 10
)

// ErrTruncated is returned for image data that ends early.
var ErrTruncated = errors.New("image data truncated")

// DecodeTGA decodes an uncompressed or RLE compressed true-colour TGA file
// with 24 or 32 bits per pixel.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("tga header: %w", ErrTruncated)
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	if colorMapType != 0 {
		return nil, fmt.Errorf("tga: colour-mapped images are not supported")
	}
	if imageType != tgaTrueColor && imageType != tgaRLE {
		return nil, fmt.Errorf("tga: unsupported image type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("tga: unsupported bit depth %d", bpp)
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("tga id field: %w", ErrTruncated)
	}

	d := tgaDecoder{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		data:        data[offset:],
		width:       width,
		height:      height,
		bytesPP:     bpp / 8,
		topToBottom: topToBottom,
	}
	var err error
	if imageType == tgaTrueColor {
		err = d.raw()
	} else {
		err = d.rle()
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	img           *image.RGBA
	data          []byte
	pos           int
	width, height int
	bytesPP       int
	topToBottom   bool
	pixel         int
}

// next reads one BGR(A) pixel.
func (d *tgaDecoder) next() (color.RGBA, error) {
	if d.pos+d.bytesPP > len(d.data) {
		return color.RGBA{}, fmt.Errorf("tga pixel %d: %w", d.pixel, ErrTruncated)
	}
	p := d.data[d.pos:]
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.bytesPP == 4 {
		c.A = p[3]
	}
	d.pos += d.bytesPP
	return c, nil
}

// put stores the next pixel in file order. TGA rows run bottom-up unless
// the descriptor says otherwise.
func (d *tgaDecoder) put(c color.RGBA) {
	x := d.pixel % d.width
	y := d.pixel / d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	d.img.SetRGBA(x, y, c)
	d.pixel++
}

func (d *tgaDecoder) raw() error {
	for d.pixel < d.width*d.height {
		c, err := d.next()
		if err != nil {
			return err
		}
		d.put(c)
	}
	return nil
}

func (d *tgaDecoder) rle() error {
	total := d.width * d.height
	for d.pixel < total {
		if d.pos >= len(d.data) {
			return fmt.Errorf("tga packet: %w", ErrTruncated)
		}
		packet := d.data[d.pos]
		d.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			c, err := d.next()
			if err != nil {
				return err
			}
			for i := 0; i < count && d.pixel < total; i++ {
				d.put(c)
			}
			continue
		}
		for i := 0; i < count && d.pixel < total; i++ {
			c, err := d.next()
			if err != nil {
				return err
			}
			d.put(c)
		}
	}
	return nil
}
