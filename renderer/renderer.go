package renderer

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/veandco/go-sdl2/sdl"
	com "vehicle_viewer/common"
	"vehicle_viewer/loader"
	"vehicle_viewer/model"
	vm "vehicle_viewer/vector_math"
)

const (
	VEHICLE_MESH = "vehicle.obj"
	FIRE_MESH    = "fireFX.obj"

	VEHICLE_DIFFUSE    = "vehicle_diffuse.png"
	VEHICLE_NORMAL     = "vehicle_normal.png"
	VEHICLE_SPECULAR   = "vehicle_specular.png"
	VEHICLE_GLOSSINESS = "vehicle_gloss.png"
	FIRE_DIFFUSE       = "fireFX_diffuse.png"

	CAMERA_FOV_ANGLE = 45

	MINIMIZED_WAIT_MS = 100
)

var CAMERA_ORIGIN = vm.Vec3{X: 0, Y: 0, Z: -50}

// Renderer shows the vehicle with its fire effect in front of a free-look camera.
type Renderer struct {
	Settings

	cfg       com.Config
	core      *Core
	technique *Technique
	scene     Scene
	camera    *model.Camera
	timer     *com.Timer

	white      *GpuTexture
	flatNormal *GpuTexture
	textures   []*GpuTexture
	vehicle    *GpuMesh
	fire       *GpuMesh

	totalTime   float32
	initialized bool
	stop        atomic.Bool
}

// NewRenderer opens the window, sets up Vulkan and loads the demo scene from cfg.ResourceDir. Missing textures are
// logged and left white, missing meshes are an error.
func NewRenderer(cfg com.Config) (*Renderer, error) {
	r := &Renderer{
		Settings: DefaultSettings(),
		cfg:      cfg,
		timer:    com.NewTimer(),
	}
	r.core = NewCore(cfg)
	r.technique = NewTechnique(r.core)
	r.white = NewWhiteTexture(r.core)
	r.flatNormal = NewFlatNormalTexture(r.core)
	r.initialized = true
	log.Println("Vulkan is initialized and ready!")

	var err error
	if r.vehicle, err = r.loadMesh(VEHICLE_MESH); err != nil {
		r.Destroy()
		return nil, err
	}
	if r.fire, err = r.loadMesh(FIRE_MESH); err != nil {
		r.Destroy()
		return nil, err
	}
	r.fire.SetPassIdx(PASS_FIRE)
	r.vehicle.SetPassIdx(uint32(r.SampleMethod))

	r.camera = model.NewCamera()
	r.camera.SetAspectRatio(r.core.Aspect())
	r.camera.Initialize(CAMERA_FOV_ANGLE, CAMERA_ORIGIN, model.DEFAULT_NEAR, model.DEFAULT_FAR)

	if err := r.assignMaps(r.vehicle.Name, VEHICLE_DIFFUSE, VEHICLE_NORMAL, VEHICLE_SPECULAR, VEHICLE_GLOSSINESS); err != nil {
		r.Destroy()
		return nil, err
	}
	if err := r.assignMaps(r.fire.Name, FIRE_DIFFUSE, "", "", ""); err != nil {
		r.Destroy()
		return nil, err
	}
	return r, nil
}

// assignMaps loads the material maps of the scene mesh called name. Empty file names leave the slot at its default.
func (r *Renderer) assignMaps(name, diffuse, normal, specular, gloss string) error {
	m, err := r.scene.FindInScene(name)
	if err != nil {
		return err
	}
	m.SetDiffuseMap(r.loadTexture(diffuse))
	m.SetNormalMap(r.loadTexture(normal))
	m.SetSpecularMap(r.loadTexture(specular))
	m.SetGlossinessMap(r.loadTexture(gloss))
	return nil
}

func (r *Renderer) loadMesh(name string) (*GpuMesh, error) {
	m, err := loader.LoadMesh(r.cfg.ResourcePath(name))
	if err != nil {
		return nil, err
	}
	gm, err := NewGpuMesh(r.core, r.technique, m, defaultMaps(r.white, r.flatNormal))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to upload %s", name)
	}
	if err := r.scene.AddToScene(gm); err != nil {
		gm.Destroy()
		return nil, err
	}
	return gm, nil
}

// loadTexture returns nil if the file cannot be used, which leaves the mesh's slot as it was.
func (r *Renderer) loadTexture(name string) *GpuTexture {
	if name == "" {
		return nil
	}
	t, err := model.LoadTexture(r.cfg.ResourcePath(name))
	if err != nil {
		log.Printf("Continuing without texture: %v", err)
		return nil
	}
	gt := NewGpuTexture(r.core, t)
	r.textures = append(r.textures, gt)
	return gt
}

// Update moves the camera and hands the frame's state to the meshes. The turntable only advances while rotation
// is on.
func (r *Renderer) Update(timer *com.Timer, in com.InputState) {
	r.camera.SetAspectRatio(r.core.Aspect())
	r.camera.Update(timer.Elapsed(), in)
	view, projection := r.camera.ViewMatrix(), r.camera.ProjectionMatrix()

	r.vehicle.UpdateMatrix(view, projection)
	r.vehicle.SetCameraPosition(r.camera.Position())
	r.vehicle.SetTime(r.totalTime)
	r.vehicle.SetUseNormalMap(r.UseNormalMap)

	r.fire.UpdateMatrix(view, projection)
	r.fire.SetTime(r.totalTime)

	if r.Rotate {
		r.totalTime += timer.Elapsed()
	}
}

// Render draws the vehicle and, when enabled, the fire effect on top.
func (r *Renderer) Render() {
	if !r.initialized {
		return
	}
	cmd, slot, ok := r.core.BeginFrame()
	if !ok {
		return
	}
	for _, m := range r.scene.Meshes() {
		if m == r.fire && !r.UseFireFX {
			continue
		}
		m.Render(cmd, slot)
	}
	r.core.EndFrame(cmd)
}

// CycleSamplerState switches the vehicle to the next sampling method.
func (r *Renderer) CycleSamplerState() {
	r.vehicle.SetPassIdx(r.Settings.CycleSamplerState())
}

type iterationHandler func(sdl.Event, *Renderer)

// Loop this function represents the event-loop for user interaction and contains the per frame update and draw.
// Basic window handling is done here: not rendering if minimized, close on the window's close button and on ESC.
// Every event is handed to ih afterwards. Loop also returns once Stop was called.
func (r *Renderer) Loop(ih iterationHandler) {
	win := r.core.Win
	win.Close = false
	frames := 0
	var sinceFpsLog float32
	r.timer.Start()

	for !r.shouldClose() {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			r.handleEvent(event)
			if ih != nil {
				ih(event, r)
			}
		}
		if win.Minimized {
			// Sleep until new events change win.Minimized, the event is put back for the next poll. The timeout keeps
			// Stop responsive.
			if event := sdl.WaitEventTimeout(MINIMIZED_WAIT_MS); event != nil {
				if _, err := sdl.PushEvent(event); err != nil {
					log.Printf("Failed to requeue event: %v", err)
				}
			}
			// Swallow the time spent minimized
			r.timer.Update()
			continue
		}

		r.timer.Update()
		r.Update(r.timer, com.ReadInput())
		r.Render()
		frames++

		sinceFpsLog += r.timer.Elapsed()
		if sinceFpsLog >= 1 {
			sinceFpsLog = 0
			log.Printf("FPS: %d", r.timer.FPS())
		}
	}
	dt := time.Duration(float64(r.timer.Total()) * float64(time.Second))
	if dt > 0 {
		log.Printf("Elapsed: %v, rough avg fps: %.1f fps", dt, float64(frames)/dt.Seconds())
	}
}

// Stop asks Loop to return after the current frame. It does not call into SDL or Vulkan and may be used from any
// goroutine.
func (r *Renderer) Stop() {
	r.stop.Store(true)
}

func (r *Renderer) shouldClose() bool {
	return r.stop.Load() || r.core.Win.Close
}

func (r *Renderer) handleEvent(event sdl.Event) {
	switch ev := event.(type) {
	case *sdl.QuitEvent:
		r.core.Win.Close = true
	case *sdl.WindowEvent:
		r.core.Win.HandleWindowEvent(ev)
	case *sdl.KeyboardEvent:
		if ev.Type == sdl.KEYDOWN && ev.Keysym.Sym == sdl.K_ESCAPE {
			r.core.Win.Close = true
		}
	}
}

// Destroy waits for the device to finish and releases everything in reverse order of creation. It is safe to call
// more than once but has to run on the thread that called NewRenderer, after Loop returned.
func (r *Renderer) Destroy() {
	if r.core == nil {
		return
	}
	r.initialized = false
	r.core.Device().WaitIdle()

	r.scene.ClearScene()
	r.vehicle, r.fire = nil, nil
	for _, t := range r.textures {
		t.Destroy(r.core.Device())
	}
	r.textures = nil
	for _, t := range []*GpuTexture{r.white, r.flatNormal} {
		if t != nil {
			t.Destroy(r.core.Device())
		}
	}
	r.white, r.flatNormal = nil, nil
	r.technique.Destroy()
	r.core.Destroy()
	r.core = nil
	log.Println("Renderer destroyed")
}
