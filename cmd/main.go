package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/golearngl/glfwcontext"
	"github.com/richinsley/golearngl/graphics/gogl"
	"github.com/richinsley/golearngl/lessons"
	"github.com/richinsley/golearngl/options"
	"github.com/richinsley/golearngl/renderer"
)

func init() {
	runtime.LockOSThread()
}

// loadLesson picks the lesson named on the command line and applies the
// shader and size overrides.
func loadLesson(opts *options.ShaderOptions) (*lessons.Lesson, error) {
	var lesson *lessons.Lesson
	var err error
	if *opts.ConfigFile != "" {
		lesson, err = lessons.Load(*opts.ConfigFile)
	} else {
		lesson, err = lessons.Lookup(*opts.Lesson)
	}
	if err != nil {
		return nil, err
	}

	if *opts.VertexFile != "" {
		lesson.Vertex = lessons.ShaderSpec{Path: *opts.VertexFile}
	}
	if *opts.FragmentFile != "" {
		lesson.Fragment = lessons.ShaderSpec{Path: *opts.FragmentFile}
	}
	if *opts.Width > 0 {
		lesson.Width = *opts.Width
	}
	if *opts.Height > 0 {
		lesson.Height = *opts.Height
	}
	return lesson, nil
}

func runLesson(lesson *lessons.Lesson, opts *options.ShaderOptions) error {
	if err := glfwcontext.InitGraphics(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	defer glfwcontext.TerminateGraphics()

	// If recording, the window will be hidden (headless mode)
	ctx, err := glfwcontext.New(lesson.Width, lesson.Height, lesson.Title, !*opts.Record)
	if err != nil {
		return fmt.Errorf("failed to initialize glfw context: %w", err)
	}
	defer ctx.Shutdown()
	ctx.MakeCurrent()

	gl, err := gogl.New()
	if err != nil {
		return err
	}
	log.Printf("OpenGL version: %s", gl.Version())

	r, err := renderer.NewRenderer(gl, ctx, lesson.Width, lesson.Height)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	defer r.Shutdown()

	scene, err := r.LoadScene(lesson)
	if err != nil {
		return fmt.Errorf("failed to load lesson %s: %w", lesson.Name, err)
	}

	if *opts.Record {
		log.Println("Starting offscreen render loop...")
		err := r.Record(scene, renderer.RecordOptions{
			Duration:   *opts.Duration,
			FPS:        *opts.FPS,
			OutputFile: *opts.OutputFile,
			FFMPEGPath: *opts.FFMPEGPath,
		})
		if err != nil {
			return fmt.Errorf("offscreen rendering failed: %w", err)
		}
		log.Printf("Successfully rendered to %s", *opts.OutputFile)
		return nil
	}

	if *opts.Watch {
		if err := r.Watch(scene); err != nil {
			return err
		}
	}
	ctx.RegisterKeyCallback(glfw.KeyR, r.RequestReload)

	log.Println("Starting interactive render loop...")
	return r.Run(scene)
}

func main() {
	opts := options.Register(flag.CommandLine)
	flag.Parse()

	if *opts.Help {
		fmt.Println("OpenGL lesson viewer/recorder")
		flag.PrintDefaults()
		return
	}
	if *opts.List {
		for _, name := range lessons.Names() {
			l, _ := lessons.Lookup(name)
			fmt.Printf("%-10s %s\n", name, l.Title)
		}
		return
	}

	lesson, err := loadLesson(opts)
	if err != nil {
		log.Fatalf("Error loading lesson: %v", err)
	}
	log.Printf("Running lesson: %s", lesson.Title)

	if err := runLesson(lesson, opts); err != nil {
		log.Fatalf("%v", err)
	}
}
