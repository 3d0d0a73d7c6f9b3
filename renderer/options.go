package renderer

// RecordOptions controls offscreen recording to a video file.
type RecordOptions struct {
	Duration   float64 // seconds
	FPS        int
	OutputFile string
	FFMPEGPath string // empty means ffmpeg on PATH
}

// frames is the number of frames a recording of o produces.
func (o RecordOptions) frames() int {
	return int(o.Duration * float64(o.FPS))
}
