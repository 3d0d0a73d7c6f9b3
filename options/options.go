package options

import (
	"flag"
)

// ShaderOptions holds the command-line settings of the lesson viewer.
type ShaderOptions struct {
	Lesson       *string
	ConfigFile   *string // YAML lesson file; overrides Lesson
	VertexFile   *string // overrides the lesson vertex stage
	FragmentFile *string // overrides the lesson fragment stage
	Width        *int
	Height       *int
	Watch        *bool // reload shader files when they change
	Record       *bool
	Duration     *float64
	FPS          *int
	OutputFile   *string
	FFMPEGPath   *string
	List         *bool
	Help         *bool
}

// Register binds every option to a flag of fs.
func Register(fs *flag.FlagSet) *ShaderOptions {
	return &ShaderOptions{
		Lesson:       fs.String("lesson", "triangle", "Built-in lesson to run (see -list)"),
		ConfigFile:   fs.String("config", "", "YAML lesson file to run instead of a built-in lesson"),
		VertexFile:   fs.String("vertex", "", "Vertex shader file overriding the lesson's vertex stage"),
		FragmentFile: fs.String("fragment", "", "Fragment shader file overriding the lesson's fragment stage"),
		Width:        fs.Int("width", 0, "Width of the window or output (default: lesson width)"),
		Height:       fs.Int("height", 0, "Height of the window or output (default: lesson height)"),
		Watch:        fs.Bool("watch", false, "Reload shader files when they change"),
		Record:       fs.Bool("record", false, "Enable recording mode"),
		Duration:     fs.Float64("duration", 10.0, "Duration to record in seconds"),
		FPS:          fs.Int("fps", 60, "Frames per second for recording"),
		OutputFile:   fs.String("output", "output.mp4", "Output file name for recording"),
		FFMPEGPath:   fs.String("ffmpeg", "", "Path to ffmpeg executable"),
		List:         fs.Bool("list", false, "List built-in lessons and exit"),
		Help:         fs.Bool("help", false, "Show help message"),
	}
}
