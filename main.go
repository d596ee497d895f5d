package main

import (
	"flag"
	"log"
	"os"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/xlab/closer"
	com "vehicle_viewer/common"
	"vehicle_viewer/renderer"
)

func init() {
	// SDL and Vulkan calls have to stay on the main thread
	runtime.LockOSThread()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.SetOutput(os.Stdout)
	log.Println("Starting vehicle viewer")
	log.Printf("Using GoLang: [%s]", runtime.Version())
}

func parseConfig() com.Config {
	cfg := com.DefaultConfig()
	width := flag.Int("width", int(cfg.Width), "window width in pixels")
	height := flag.Int("height", int(cfg.Height), "window height in pixels")
	flag.StringVar(&cfg.ResourceDir, "resources", cfg.ResourceDir, "directory holding meshes and textures")
	flag.StringVar(&cfg.ShaderDir, "shaders", cfg.ShaderDir, "directory holding the compiled SPIR-V shaders")
	flag.BoolVar(&cfg.VSync, "vsync", cfg.VSync, "wait for vertical sync when presenting")
	flag.BoolVar(&cfg.Validation, "validation", cfg.Validation, "enable the Khronos validation layer")
	flag.IntVar(&cfg.FramesInFlight, "frames", cfg.FramesInFlight, "frames recorded ahead of the GPU")
	flag.Parse()
	cfg.Width, cfg.Height = int32(*width), int32(*height)
	return cfg
}

func onIteration(event sdl.Event, r *renderer.Renderer) {
	ev, ok := event.(*sdl.KeyboardEvent)
	if !ok || ev.Type != sdl.KEYUP {
		return
	}
	switch ev.Keysym.Sym {
	case sdl.K_F2:
		r.ToggleRotation()
	case sdl.K_F3:
		r.ToggleFireFX()
	case sdl.K_F4:
		r.CycleSamplerState()
	case sdl.K_F6:
		r.ToggleNormalVisibility()
	}
}

func printControls() {
	log.Println("[F2] toggle rotation, [F3] toggle fire FX, [F4] cycle sampling method, [F6] toggle normal map")
	log.Println("[WASD/arrows] move, [LShift] boost, [RMB] look, [LMB] move forward/turn, [LMB+RMB] move up/down, [Esc] quit")
}

func main() {
	defer closer.Close()

	cfg := parseConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	r, err := renderer.NewRenderer(cfg)
	if err != nil {
		closer.Fatalln(err)
	}
	// Teardown stays on the locked main thread, the closer goroutine only waits for it
	done := make(chan struct{})
	defer close(done)
	defer r.Destroy()
	closer.Bind(shutdownHook(r.Stop, done))

	printControls()
	r.Loop(onIteration)
}

// shutdownHook returns the cleanup closer runs on a signal: it asks the render loop to stop and blocks until done
// is closed.
func shutdownHook(stop func(), done <-chan struct{}) func() {
	return func() {
		stop()
		<-done
	}
}
