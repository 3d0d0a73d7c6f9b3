package inputs

import (
	"github.com/richinsley/golearngl/graphics"
)

// getWrapMode converts a wrap name to the GL constant.
func getWrapMode(wrap string) int32 {
	switch wrap {
	case "repeat":
		return graphics.Repeat
	case "clamp":
		return graphics.ClampToEdge
	default:
		return graphics.Repeat // Default behavior
	}
}

// getFilterMode converts a filter name to GL min/mag filter constants.
func getFilterMode(filter string) (minFilter, magFilter int32) {
	switch filter {
	case "mipmap":
		return graphics.LinearMipmapLinear, graphics.Linear
	case "linear":
		return graphics.Linear, graphics.Linear
	case "nearest":
		return graphics.Nearest, graphics.Nearest
	default:
		return graphics.Linear, graphics.Linear // Default behavior
	}
}
