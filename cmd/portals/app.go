package main

import (
	"flag"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/chewxy/math32"

	"portalview/internal/commands"
	"portalview/internal/console"
	"portalview/internal/debug"
	"portalview/internal/graphics"
	"portalview/internal/logger"
	"portalview/internal/pga"
	"portalview/internal/presets"
	"portalview/internal/scene"
	"portalview/internal/settings"
	"portalview/internal/tracer"
)

// autosavePath is where the scene is kept between runs; an explicit `save`
// writes wherever the user says.
const autosavePath = "config/autosave.scene"

// App owns the scene, the render settings and the accumulation state, and
// runs one cooperative frame at a time: console input, camera update, portal
// traversal, kernel dispatch, present. Nothing here runs concurrently; the
// only parallelism is inside Renderer.Dispatch.
type App struct {
	log      *logger.Logger
	scene    scene.Scene
	settings settings.Render
	renderer *tracer.Renderer
	acc      *tracer.Accumulator
	screen   *graphics.Screen
	console  *console.Console
	overlay  *debug.Overlay
	presets  *presets.Registry

	// changed is the accumulation-reset latch: set by any observable scene,
	// camera or settings mutation and consumed at dispatch time.
	changed bool
}

// NewApp loads persisted state and wires the console commands.
func NewApp(log *logger.Logger) *App {
	a := &App{
		log:      log,
		scene:    scene.Default(),
		settings: settings.Load(),
		renderer: tracer.NewRenderer(),
		acc:      tracer.NewAccumulator(1, 1),
		screen:   graphics.NewScreen(),
		overlay:  debug.New(),
		presets:  presets.Load(presets.Dir),
	}
	if s, err := scene.Load(autosavePath); err == nil {
		a.scene = s
	}

	reg := commands.NewRegistry()
	a.register(reg)
	a.console = console.New(log, reg)
	return a
}

// Update runs the host side of one frame.
func (a *App) Update() {
	a.console.Update()
	a.overlay.Update()

	targetW, targetH := graphics.TargetSize(a.settings.RenderScale)
	a.acc.Resize(targetW, targetH)

	ts := rl.GetFrameTime()
	if !a.console.IsOpen() {
		oldPosition := a.scene.Camera.Position
		if a.scene.Camera.Update(graphics.ReadInput(), ts) {
			a.changed = true
			if a.scene.TraversePortals(oldPosition) {
				p := a.scene.Camera.Position
				a.log.Logf("teleported to %.2f %.2f %.2f", p.X, p.Y, p.Z)
			}
		}
	}

	if a.changed {
		a.acc.Reset()
		a.changed = false
	}

	antialiasing := uint32(0)
	if a.settings.Antialiasing {
		antialiasing = 1
	}
	info := tracer.GpuSceneInfo{
		Camera: a.scene.DeviceCamera(
			a.settings.RecursivePortalCount, a.settings.MaxBounces),
		Aspect:            float32(targetW) / float32(targetH),
		AccumulatedFrames: a.acc.Frames(),
		RandomSeed:        rand.Uint32(),
		RenderType:        a.settings.RenderType.Device(),
		Antialiasing:      antialiasing,
	}
	a.renderer.Dispatch(info, a.scene.DevicePlanes(), a.acc)
}

// Draw presents the accumulated image, then the console and overlay on top.
func (a *App) Draw() {
	a.screen.Present(a.acc)
	a.console.Draw()
	a.overlay.Draw(a.acc.Frames(), a.scene.Camera.Position)
}

// Shutdown persists settings and the scene.
func (a *App) Shutdown() {
	if err := settings.Save(a.settings); err != nil {
		a.log.Logf("save settings: %v", err)
	}
	if _, err := a.scene.Save(autosavePath); err != nil {
		a.log.Logf("autosave scene: %v", err)
	}
}

func (a *App) register(reg *commands.Registry) {
	reg.Register("help", "list commands", nil, func([]string) error {
		for _, line := range reg.Help() {
			a.log.Log(line)
		}
		return nil
	})

	reg.Register("save", "save <path> - write the scene (.scene appended if no extension)", nil,
		func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: save <path>")
			}
			path, err := a.scene.Save(args[0])
			if err != nil {
				return err
			}
			a.log.Logf("saved %s", path)
			return nil
		})

	reg.Register("load", "load <path> - load a scene file", nil,
		func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: load <path>")
			}
			s, err := scene.Load(args[0])
			if err != nil {
				return fmt.Errorf("load %s: %w (keeping current scene)", args[0], err)
			}
			a.scene = s
			a.changed = true
			a.log.Logf("loaded %s", args[0])
			return nil
		})

	reg.Register("reset", "reset everything to the default scene", nil,
		func([]string) error {
			a.scene = scene.Default()
			a.changed = true
			return nil
		})

	reg.Register("clear", "restart progressive accumulation", nil,
		func([]string) error {
			a.acc.Reset()
			return nil
		})

	a.registerRender(reg)
	a.registerSun(reg)
	a.registerPlane(reg)
}

// registerRender wires the render command. Only flags the user actually set
// are applied, so `render -aa false` leaves everything else alone.
func (a *App) registerRender(reg *commands.Registry) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	renderType := fs.String("type", "", "unlit or lit")
	aa := fs.Bool("aa", true, "antialiasing")
	portals := fs.Uint("portals", 0, "max portal recursion")
	bounces := fs.Uint("bounces", 0, "max light bounces")
	scale := fs.Int("scale", 0, "render scale divisor (1 = full resolution)")

	reg.Register("render", "render [-type unlit|lit] [-aa bool] [-portals N] [-bounces N] [-scale N]", fs,
		func([]string) error {
			var err error
			fs.Visit(func(f *flag.Flag) {
				switch f.Name {
				case "type":
					switch *renderType {
					case "unlit":
						a.settings.RenderType = settings.Unlit
					case "lit":
						a.settings.RenderType = settings.Lit
					default:
						err = fmt.Errorf("unknown render type: %s", *renderType)
						return
					}
				case "aa":
					a.settings.Antialiasing = *aa
				case "portals":
					a.settings.RecursivePortalCount = uint32(*portals)
				case "bounces":
					a.settings.MaxBounces = uint32(*bounces)
				case "scale":
					a.settings.RenderScale = *scale
				}
				a.changed = true
			})
			a.settings.Sanitise()
			return err
		})
}

func (a *App) registerSun(reg *commands.Registry) {
	fs := flag.NewFlagSet("sun", flag.ContinueOnError)
	size := fs.Float64("size", 0, "angular radius in degrees")
	intensity := fs.Float64("intensity", 0, "sun intensity")
	direction := fs.String("dir", "", "direction as x,y,z")

	reg.Register("sun", "sun [-size deg] [-intensity f] [-dir x,y,z]", fs,
		func([]string) error {
			var err error
			fs.Visit(func(f *flag.Flag) {
				switch f.Name {
				case "size":
					a.scene.SunSize = float32(*size) * math32.Pi / 180
					a.scene.ClampSunSize()
				case "intensity":
					a.scene.SunIntensity = float32(*intensity)
				case "dir":
					v, perr := parseVector3(*direction)
					if perr != nil {
						err = perr
						return
					}
					a.scene.SunDirection = v
				}
				a.changed = true
			})
			return err
		})
}

func (a *App) registerPlane(reg *commands.Registry) {
	reg.Register("plane",
		"plane list | add [preset] | del N | dup N | move N x y z | connect A front|back B | disconnect A front|back",
		nil, func(args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("usage: plane <list|add|del|dup|move|connect|disconnect> ...")
			}
			switch args[0] {
			case "list":
				for i := range a.scene.Planes {
					p := &a.scene.Planes[i]
					a.log.Logf("%d: %s %gx%g front=%s back=%s",
						i, p.Name, p.Width, p.Height,
						connectionString(p.FrontPortal), connectionString(p.BackPortal))
				}
				return nil
			case "add":
				preset := ""
				if len(args) > 1 {
					preset = args[1]
				}
				p, err := a.presets.Plane(preset)
				if err != nil {
					return err
				}
				index := a.scene.AddPlane(p)
				a.changed = true
				a.log.Logf("added %s at index %d", p.Name, index)
				return nil
			case "del":
				index, err := a.planeIndex(args, 1)
				if err != nil {
					return err
				}
				if err := a.scene.RemovePlane(index); err != nil {
					return err
				}
				a.changed = true
				return nil
			case "dup":
				index, err := a.planeIndex(args, 1)
				if err != nil {
					return err
				}
				copyIndex, err := a.scene.DuplicatePlane(index)
				if err != nil {
					return err
				}
				a.changed = true
				a.log.Logf("duplicated to index %d", copyIndex)
				return nil
			case "move":
				index, err := a.planeIndex(args, 1)
				if err != nil {
					return err
				}
				if len(args) != 5 {
					return fmt.Errorf("usage: plane move N x y z")
				}
				v, err := parseVector3(strings.Join(args[2:5], ","))
				if err != nil {
					return err
				}
				a.scene.Planes[index].Position = v
				a.changed = true
				return nil
			case "connect":
				index, err := a.planeIndex(args, 1)
				if err != nil {
					return err
				}
				if len(args) != 4 {
					return fmt.Errorf("usage: plane connect A front|back B")
				}
				other, err := a.planeIndex(args, 3)
				if err != nil {
					return err
				}
				side, err := a.portalSide(index, args[2])
				if err != nil {
					return err
				}
				side.Connect(other)
				a.changed = true
				return nil
			case "disconnect":
				index, err := a.planeIndex(args, 1)
				if err != nil {
					return err
				}
				if len(args) != 3 {
					return fmt.Errorf("usage: plane disconnect A front|back")
				}
				side, err := a.portalSide(index, args[2])
				if err != nil {
					return err
				}
				*side = scene.PortalConnection{}
				a.changed = true
				return nil
			default:
				return fmt.Errorf("unknown plane subcommand: %s", args[0])
			}
		})
}

func (a *App) planeIndex(args []string, pos int) (int, error) {
	if len(args) <= pos {
		return 0, fmt.Errorf("missing plane index")
	}
	index, err := strconv.Atoi(args[pos])
	if err != nil {
		return 0, fmt.Errorf("bad plane index: %s", args[pos])
	}
	if index < 0 || index >= len(a.scene.Planes) {
		return 0, fmt.Errorf("no plane at index %d", index)
	}
	return index, nil
}

func (a *App) portalSide(index int, side string) (*scene.PortalConnection, error) {
	switch side {
	case "front":
		return &a.scene.Planes[index].FrontPortal, nil
	case "back":
		return &a.scene.Planes[index].BackPortal, nil
	}
	return nil, fmt.Errorf("side must be front or back, got %s", side)
}

func connectionString(c scene.PortalConnection) string {
	if c.OtherIndex == nil {
		return "-"
	}
	return strconv.Itoa(*c.OtherIndex)
}

func parseVector3(s string) (pga.Vector3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return pga.Vector3{}, fmt.Errorf("want x,y,z, got %q", s)
	}
	var out [3]float32
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return pga.Vector3{}, fmt.Errorf("bad component %q", part)
		}
		out[i] = float32(v)
	}
	return pga.Vector3{X: out[0], Y: out[1], Z: out[2]}, nil
}
