// Package pgm implements the plain-text Portable Gray Map (P2) format.
//
// The encoder always writes a maximum gray value of 255, one pixel value
// per line, in row-major order.  The decoder accepts any whitespace between
// tokens and "#" comments in the header, and is registered with the image
// package under the name "pgm".
package pgm

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
)

const (
	// Magic is the magic number of the ASCII gray map.
	Magic = "P2"
	// MaxValue is the maximum gray value written and accepted.
	MaxValue = 255
	// MaxPixels is the largest number of pixels the decoder will allocate.
	MaxPixels = 1 << 26
)

// ErrFormat is returned when the input is not a valid ASCII gray map.
var ErrFormat = errors.New("pgm: invalid format")

func init() {
	image.RegisterFormat("pgm", Magic, Decode, DecodeConfig)
}

// Encode writes the image m to w in the P2 format.  Pixels that are not
// color.Gray are converted with color.GrayModel.
func Encode(w io.Writer, m image.Image) error {
	b := m.Bounds()
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n%d\n", Magic, b.Dx(), b.Dy(), MaxValue); err != nil {
		return err
	}
	gray, _ := m.(*image.Gray)
	var num []byte
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			var v uint8
			if gray != nil {
				v = gray.GrayAt(x, y).Y
			} else {
				v = color.GrayModel.Convert(m.At(x, y)).(color.Gray).Y
			}
			num = strconv.AppendUint(num[:0], uint64(v), 10)
			num = append(num, '\n')
			if _, err := bw.Write(num); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// DecodeConfig returns the dimensions and color model of the gray map
// without reading the pixel values.
func DecodeConfig(r io.Reader) (image.Config, error) {
	d := newDecoder(r)
	if err := d.readHeader(); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.GrayModel,
		Width:      d.width,
		Height:     d.height,
	}, nil
}

// Decode reads a P2 gray map from r and returns it as *image.Gray.
func Decode(r io.Reader) (image.Image, error) {
	d := newDecoder(r)
	if err := d.readHeader(); err != nil {
		return nil, err
	}
	img := image.NewGray(image.Rect(0, 0, d.width, d.height))
	for i := range img.Pix {
		v, err := d.readInt(false)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: pixel %d of %d: unexpected end of data", ErrFormat, i, len(img.Pix))
			}
			return nil, fmt.Errorf("pixel %d: %w", i, err)
		}
		if v > d.maxval {
			return nil, fmt.Errorf("%w: pixel %d: value %d exceeds maximum %d", ErrFormat, i, v, d.maxval)
		}
		img.Pix[i] = uint8(v)
	}
	return img, nil
}

type decoder struct {
	r *bufio.Reader

	width  int
	height int
	maxval int
}

func newDecoder(r io.Reader) *decoder {
	return &decoder{r: bufio.NewReader(r)}
}

func (d *decoder) readHeader() error {
	magic, err := d.token(true)
	if err != nil {
		return fmt.Errorf("%w: missing magic number", ErrFormat)
	}
	if magic != Magic {
		return fmt.Errorf("%w: magic number %q, want %q", ErrFormat, magic, Magic)
	}
	for _, f := range []struct {
		name string
		dst  *int
	}{
		{"width", &d.width},
		{"height", &d.height},
		{"max value", &d.maxval},
	} {
		v, err := d.readInt(true)
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: missing %s", ErrFormat, f.name)
		} else if err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = v
	}
	if d.width <= 0 || d.height <= 0 {
		return fmt.Errorf("%w: invalid dimensions %dx%d", ErrFormat, d.width, d.height)
	}
	// each side is checked first so that the product can't overflow.
	if d.width > MaxPixels || d.height > MaxPixels || int64(d.width)*int64(d.height) > MaxPixels {
		return fmt.Errorf("%w: dimensions %dx%d exceed %d pixels", ErrFormat, d.width, d.height, MaxPixels)
	}
	if d.maxval != MaxValue {
		return fmt.Errorf("%w: unsupported max value %d", ErrFormat, d.maxval)
	}
	return nil
}

// token returns the next whitespace separated token.  Comments ("#" to the
// end of the line) are only recognised in the header, where a comment also
// ends the token it follows.
func (d *decoder) token(header bool) (string, error) {
	var tok []byte
	for {
		c, err := d.r.ReadByte()
		if err != nil {
			if err == io.EOF && len(tok) > 0 {
				return string(tok), nil
			}
			return "", err
		}
		switch {
		case isSpace(c):
			if len(tok) > 0 {
				return string(tok), nil
			}
		case c == '#' && header:
			if _, err := d.r.ReadString('\n'); err != nil && (err != io.EOF || len(tok) == 0) {
				return "", err
			}
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, c)
		}
	}
}

func (d *decoder) readInt(header bool) (int, error) {
	tok, err := d.token(header)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: not a non-negative integer: %q", ErrFormat, tok)
	}
	return v, nil
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
