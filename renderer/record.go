package renderer

import (
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

const numBuffers = 3 // frames in flight between renderer and encoder

// Frame represents a single rendered frame's data, ready for encoding.
type Frame struct {
	Pixels []byte
	PTS    int64
}

// encoder is the consumer end of a recording: raw frames go into w, and
// done yields the result of the encoding process once w is closed.
type encoder struct {
	w    io.WriteCloser
	done <-chan error
}

// getArgs builds the ffmpeg arguments for raw RGBA frames read bottom row
// first.
func getArgs(opts RecordOptions, width, height int) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"f":       "rawvideo",
		"pix_fmt": "rgba",
		"s":       fmt.Sprintf("%dx%d", width, height),
		"r":       opts.FPS,
	}

	// GL rows start at the bottom.
	outputArgs = ffmpeg.KwArgs{"vf": "vflip"}

	switch strings.ToLower(filepath.Ext(opts.OutputFile)) {
	case ".gif":
	case ".webm":
		outputArgs["c:v"] = "libvpx-vp9"
		outputArgs["pix_fmt"] = "yuv420p"
	default:
		outputArgs["c:v"] = "libx264"
		outputArgs["pix_fmt"] = "yuv420p"
	}
	return
}

// startFFmpeg runs ffmpeg reading frames from a pipe.
func startFFmpeg(opts RecordOptions, width, height int) (*encoder, error) {
	pipeReader, pipeWriter := io.Pipe()
	inputArgs, outputArgs := getArgs(opts, width, height)

	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(opts.OutputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()

	if opts.FFMPEGPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(opts.FFMPEGPath)
	}

	errc := make(chan error, 1)
	go func() {
		err := ffmpegCmd.Run()
		// Unblock the writer if ffmpeg exits before reading every frame.
		pipeReader.Close()
		errc <- err
	}()
	return &encoder{w: pipeWriter, done: errc}, nil
}

// runEncoder is the Consumer. It feeds frames from frameChan to enc. After a
// write error the remaining frames are drained so the producer never blocks.
func runEncoder(enc *encoder, frameChan <-chan *Frame, doneChan chan<- error) {
	var writeErr error
	for frame := range frameChan {
		if writeErr != nil {
			continue
		}
		if _, err := enc.w.Write(frame.Pixels); err != nil {
			log.Printf("Error writing frame %d to encoder: %v", frame.PTS, err)
			writeErr = fmt.Errorf("failed to write frame %d: %w", frame.PTS, err)
		}
	}
	enc.w.Close()
	err := <-enc.done
	if writeErr != nil {
		doneChan <- writeErr
		return
	}
	if err != nil {
		err = fmt.Errorf("encoder failed: %w", err)
	}
	doneChan <- err
}

// Record renders Duration*FPS frames of scene offscreen at fixed time steps
// and encodes them to opts.OutputFile. It is the Producer: GL work stays on
// the calling thread while encoding runs in its own goroutine.
func (r *Renderer) Record(scene *Scene, opts RecordOptions) error {
	if opts.FPS <= 0 {
		return fmt.Errorf("invalid frame rate %d", opts.FPS)
	}
	if opts.Duration <= 0 {
		return fmt.Errorf("invalid duration %v", opts.Duration)
	}
	if opts.OutputFile == "" {
		return fmt.Errorf("no output file given")
	}

	enc, err := r.newEncoder(opts, r.width, r.height)
	if err != nil {
		return fmt.Errorf("failed to start encoder: %w", err)
	}

	log.Println("Starting in record mode...")
	frameChan := make(chan *Frame, numBuffers)
	encoderDoneChan := make(chan error, 1)

	// Start the consumer goroutine
	go runEncoder(enc, frameChan, encoderDoneChan)

	totalFrames := opts.frames()
	timeStep := 1.0 / float64(opts.FPS)

	var renderErr error
	for i := 0; i < totalFrames; i++ {
		pixels, err := r.RenderOffscreen(scene, float64(i)*timeStep)
		if err != nil {
			renderErr = fmt.Errorf("failed to render frame %d: %w", i, err)
			break
		}

		// Send the rendered frame to the consumer
		frameChan <- &Frame{Pixels: pixels, PTS: int64(i)}
		if (i+1)%opts.FPS == 0 {
			log.Printf("Recorded %d/%d frames", i+1, totalFrames)
		}
	}

	// Close the channel to signal the producer is done
	close(frameChan)

	// Wait for the consumer to finish
	encErr := <-encoderDoneChan
	if renderErr != nil {
		return renderErr
	}
	return encErr
}
