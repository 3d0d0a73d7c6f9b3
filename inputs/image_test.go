package inputs

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/richinsley/golearngl/graphics"
	"github.com/richinsley/golearngl/graphics/glstub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	black = color.RGBA{0, 0, 0, 255}
)

func TestCheckerboard(t *testing.T) {
	img := Checkerboard(8, 4, white, black)
	assert.Equal(t, image.Rect(0, 0, 8, 8), img.Bounds())
	assert.Equal(t, white, img.RGBAAt(0, 0))
	assert.Equal(t, white, img.RGBAAt(1, 1))
	assert.Equal(t, black, img.RGBAAt(2, 0))
	assert.Equal(t, black, img.RGBAAt(0, 2))
	assert.Equal(t, white, img.RGBAAt(2, 2))
}

func TestVFlip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	img.SetRGBA(0, 0, white)
	img.SetRGBA(1, 2, black)

	flipped := vflip(img)
	assert.Equal(t, white, flipped.RGBAAt(0, 2))
	assert.Equal(t, black, flipped.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{}, flipped.RGBAAt(0, 0))
}

func TestSamplerModes(t *testing.T) {
	assert.Equal(t, int32(graphics.Repeat), getWrapMode("repeat"))
	assert.Equal(t, int32(graphics.ClampToEdge), getWrapMode("clamp"))
	assert.Equal(t, int32(graphics.Repeat), getWrapMode(""))

	minF, magF := getFilterMode("mipmap")
	assert.Equal(t, int32(graphics.LinearMipmapLinear), minF)
	assert.Equal(t, int32(graphics.Linear), magF)
	minF, magF = getFilterMode("nearest")
	assert.Equal(t, int32(graphics.Nearest), minF)
	assert.Equal(t, int32(graphics.Nearest), magF)
}

func TestNewTexture(t *testing.T) {
	gl := glstub.New()
	// A sub-image whose bounds do not start at the origin.
	src := Checkerboard(16, 2, white, black).SubImage(image.Rect(4, 4, 16, 12))

	tex, err := NewTexture(gl, src, Sampler{Filter: "mipmap", Wrap: "clamp", VFlip: true})
	require.NoError(t, err)

	assert.Equal(t, [3]float32{12, 8, 1}, tex.Resolution())
	assert.Equal(t, Sampler{Filter: "mipmap", Wrap: "clamp", VFlip: true}, tex.Sampler())
	w, h := gl.TextureSize(tex.GetTextureID())
	assert.Equal(t, int32(12), w)
	assert.Equal(t, int32(8), h)
	assert.Equal(t, 1, gl.Live().Textures)
	assert.Equal(t, uint32(graphics.NoError), gl.GetError())

	tex.Destroy()
	tex.Destroy()
	assert.Zero(t, gl.Live().Total())
	assert.Zero(t, gl.DoubleDeletes)
}

func TestNewTextureErrors(t *testing.T) {
	gl := glstub.New()
	_, err := NewTexture(gl, nil, Sampler{})
	require.Error(t, err)

	_, err = NewTexture(gl, image.NewRGBA(image.Rect(0, 0, 0, 0)), Sampler{})
	require.Error(t, err)

	gl.FailCreate = true
	_, err = NewTexture(gl, Checkerboard(4, 2, white, black), Sampler{})
	require.ErrorIs(t, err, ErrAllocation)
	assert.Zero(t, gl.Live().Total())
}

func TestLoadImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, Checkerboard(4, 2, white, black)))
	require.NoError(t, f.Close())

	img, err := LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 4), img.Bounds())

	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0o644))
	_, err = LoadImage(garbage)
	require.Error(t, err)

	_, err = LoadImage(filepath.Join(dir, "missing.png"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
