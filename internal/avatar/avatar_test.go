package avatar

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/actionanand/Ctrl-Alt-Del/internal/constants"
)

func sampleImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func TestCheckUpload(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int64
		want     error
	}{
		{name: "png", filename: "me.png", size: 10, want: nil},
		{name: "jpg", filename: "me.jpg", size: 10, want: nil},
		{name: "jpeg", filename: "holiday.photo.jpeg", size: 10, want: nil},
		{name: "limit is inclusive", filename: "me.png", size: constants.MaxAvatarBytes, want: nil},
		{name: "gif", filename: "me.gif", size: 10, want: ErrNotAnImage},
		{name: "no extension", filename: "png", size: 10, want: ErrNotAnImage},
		{name: "extension not at end", filename: "me.png.exe", size: 10, want: ErrNotAnImage},
		{name: "too large", filename: "me.png", size: constants.MaxAvatarBytes + 1, want: ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckUpload(tt.filename, tt.size)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestProcess_PNG(t *testing.T) {
	var src bytes.Buffer
	require.NoError(t, png.Encode(&src, sampleImage(640, 480)))

	out, err := Process(&src)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, constants.AvatarSize, decoded.Bounds().Dx())
	assert.Equal(t, constants.AvatarSize, decoded.Bounds().Dy())
}

func TestProcess_JPEGBecomesPNG(t *testing.T) {
	var src bytes.Buffer
	require.NoError(t, jpeg.Encode(&src, sampleImage(100, 300), nil))

	out, err := Process(&src)
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, constants.AvatarSize, cfg.Width)
	assert.Equal(t, constants.AvatarSize, cfg.Height)
}

func TestProcess_NotAnImage(t *testing.T) {
	_, err := Process(bytes.NewReader([]byte("definitely not an image")))
	require.ErrorIs(t, err, ErrNotAnImage)
}
