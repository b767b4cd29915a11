// replayhost is a demo host process for the playback engine. Its
// Ebiten update loop is the per-frame clock the scheduler is driven
// by, and the Z key plays the role of genuine user input on the
// interception path.
//
// Keys:
//
//	Tab    cycle replay selection
//	Enter  load selected replay
//	S      start playback
//	X      stop playback
//	E      toggle master enable
//	G      toggle legit mode
//	I      toggle ignore-live-inputs
//	D      delete selected replay
//	Z      genuine press/release (feeds the correlator)
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/ghostinput/internal/application/engine"
	"github.com/younwookim/ghostinput/internal/infrastructure/bridge"
	"github.com/younwookim/ghostinput/internal/infrastructure/config"
	"github.com/younwookim/ghostinput/internal/infrastructure/storage"
)

const (
	screenW = 480
	screenH = 270
)

// frameClock funnels Ebiten's Update calls into the engine's clock
// subscription.
type frameClock struct {
	fn func()
}

func (c *frameClock) Subscribe(fn func()) (cancel func()) {
	c.fn = fn
	return func() { c.fn = nil }
}

func (c *frameClock) deliver() {
	if c.fn != nil {
		c.fn()
	}
}

// App implements ebiten.Game and hosts the playback engine.
type App struct {
	eng   *engine.Engine
	clock *frameClock

	names    []string
	selected int

	status   string
	executed int64

	enabled    bool
	legit      bool
	ignoreLive bool
}

func NewApp(eng *engine.Engine, clock *frameClock) *App {
	app := &App{
		eng:     eng,
		clock:   clock,
		status:  "idle",
		enabled: true,
	}

	eng.OnStatus(func(s string) { app.status = s })
	eng.OnExecutedCount(func(n int64) { app.executed = n })
	eng.OnReplayListChanged(func() { app.refreshNames() })

	app.refreshNames()
	return app
}

func (a *App) refreshNames() {
	names, err := a.eng.Names()
	if err != nil {
		a.status = fmt.Sprintf("list error: %v", err)
		return
	}
	a.names = names
	if a.selected >= len(a.names) {
		a.selected = 0
	}
}

// Update handles the control keys, forwards genuine input, and
// delivers this frame's tick. Implements ebiten.Game interface.
func (a *App) Update() error {
	// Genuine input path. With a real host bridge the trampoline
	// feeds Observe; the demo wires the keyboard to the same entry.
	if inpututil.IsKeyJustPressed(ebiten.KeyZ) {
		a.eng.Observe(true)
	}
	if inpututil.IsKeyJustReleased(ebiten.KeyZ) {
		a.eng.Observe(false)
	}

	a.handleControls()

	a.clock.deliver()
	return nil
}

func (a *App) handleControls() {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) && len(a.names) > 0 {
		a.selected = (a.selected + 1) % len(a.names)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) && len(a.names) > 0 {
		if err := a.eng.Load(a.names[a.selected]); err != nil {
			a.status = fmt.Sprintf("load error: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		a.eng.Start()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		a.eng.Stop()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		a.enabled = !a.enabled
		a.eng.SetEnabled(a.enabled)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		a.legit = !a.legit
		a.eng.SetLegitMode(a.legit)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		a.ignoreLive = !a.ignoreLive
		a.eng.SetIgnoreLiveInputs(a.ignoreLive)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) && len(a.names) > 0 {
		if err := a.eng.Delete(a.names[a.selected]); err != nil {
			a.status = fmt.Sprintf("delete error: %v", err)
		}
	}
}

// Draw renders the status panel. Implements ebiten.Game interface.
func (a *App) Draw(screen *ebiten.Image) {
	var b strings.Builder
	fmt.Fprintf(&b, "status: %s\n", a.status)
	fmt.Fprintf(&b, "executed: %d\n", a.executed)
	fmt.Fprintf(&b, "enabled: %v  legit: %v  ignore-live: %v\n\n", a.enabled, a.legit, a.ignoreLive)

	b.WriteString("replays:\n")
	if len(a.names) == 0 {
		b.WriteString("  (none)\n")
	}
	for i, name := range a.names {
		marker := "  "
		if i == a.selected {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%s\n", marker, name)
	}

	ebitenutil.DebugPrint(screen, b.String())
}

// Layout returns the logical screen dimensions. Implements
// ebiten.Game interface.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

func main() {
	replayDir := flag.String("replays", "replays", "directory of replay blobs")
	configDir := flag.String("config", ".", "directory containing ghostinput.json")
	flag.Parse()

	cfg, err := config.NewLoader(*configDir).Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var br bridge.Bridge = bridge.Offline{}
	if cfg.Bridge.Library != "" {
		br = bridge.NewHost(bridge.Options{
			Library:     cfg.Bridge.Library,
			BuildID:     cfg.Bridge.BuildID,
			X:           cfg.Bridge.X,
			Y:           cfg.Bridge.Y,
			Identity:    cfg.Bridge.Identity,
			AltIdentity: cfg.Bridge.AltIdentity,
		})
	}

	clock := &frameClock{}
	eng := engine.New(cfg, storage.NewDir(*replayDir), br, clock)
	app := NewApp(eng, clock)

	ebiten.SetWindowSize(screenW*2, screenH*2)
	ebiten.SetWindowTitle("replayhost")

	if err := ebiten.RunGame(app); err != nil {
		log.Fatal(err)
	}
}
