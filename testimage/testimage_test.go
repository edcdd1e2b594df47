package testimage

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// level is the expected gray level of the i-th pixel in scan order.
func level(i int) int {
	return i / RunLength % (MaxValue + 1)
}

func TestRender(t *testing.T) {
	img := Render()
	require.Equal(t, image.Rect(0, 0, Width, Height), img.Bounds())
	require.Len(t, img.Pix, Width*Height)
	for i, v := range img.Pix {
		if int(v) != level(i) {
			t.Fatalf("pixel %d = %d, want %d", i, v, level(i))
		}
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf))

	out := buf.String()
	require.True(t, strings.HasSuffix(out, "\n"), "output must end with a newline")
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, Width*Height+3)

	assert.Equal(t, "P2", lines[0])
	assert.Equal(t, "352 288", lines[1])
	assert.Equal(t, "255", lines[2])

	pixels := lines[3:]
	for i, s := range pixels {
		v, err := strconv.Atoi(s)
		require.NoError(t, err, "pixel %d", i)
		if v < 0 || v > MaxValue || v != level(i) {
			t.Fatalf("pixel %d = %d, want %d", i, v, level(i))
		}
	}

	tests := []struct {
		name  string
		index int
		want  string
	}{
		{"first pixel", 0, "0"},
		{"end of first run", 3, "0"},
		{"second run", 4, "1"},
		{"last pixel before wrap", 1023, "255"},
		{"wrap around", 1024, "0"},
		{"last pixel", Width*Height - 1, "255"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pixels[tt.index])
		})
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, OutputFile)

	// existing content must be replaced entirely.
	require.NoError(t, os.WriteFile(name, bytes.Repeat([]byte("junk\n"), 200000), 0o644))

	require.NoError(t, WriteFile(name))
	first, err := os.ReadFile(name)
	require.NoError(t, err)

	var want bytes.Buffer
	require.NoError(t, Write(&want))
	assert.Equal(t, want.Bytes(), first)

	t.Run("idempotent", func(t *testing.T) {
		require.NoError(t, WriteFile(name))
		second, err := os.ReadFile(name)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(first, second), "output differs between runs")
	})

	t.Run("decodes as pgm", func(t *testing.T) {
		f, err := os.Open(name)
		require.NoError(t, err)
		defer f.Close()

		img, format, err := image.Decode(f)
		require.NoError(t, err)
		assert.Equal(t, "pgm", format)
		assert.Equal(t, Render(), img)
	})
}

func TestWriteFile_error(t *testing.T) {
	name := filepath.Join(t.TempDir(), "missing", OutputFile)
	assert.Error(t, WriteFile(name))
	_, err := os.Stat(name)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
