// Package app runs the pet in a terminal.
package app

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sethgrid/beagle/internal/controller"
	"github.com/sethgrid/beagle/internal/input"
	"github.com/sethgrid/beagle/internal/mood"
	"github.com/sethgrid/beagle/internal/page"
	"github.com/sethgrid/beagle/internal/pet"
	"github.com/sethgrid/beagle/internal/render"
	"github.com/sethgrid/beagle/internal/sniff"
	"github.com/sethgrid/beagle/internal/sound"
	"github.com/sethgrid/beagle/internal/storage"
	"go.uber.org/zap"
)

// Options configure a run.
type Options struct {
	Config        pet.PetConfig
	Page          *page.Page
	Theme         controller.Theme
	Touch         bool
	ReducedMotion bool
	Mute          bool
	FPS           int
	SessionPath   string // empty disables the session file
	Logger        *zap.Logger
}

// App owns the screen, the controller and the audio for one run. All of
// its state is touched only from the Run goroutine.
type App struct {
	screen   tcell.Screen
	opts     Options
	log      *zap.Logger
	ctl      *controller.Controller
	renderer *render.Renderer
	sound    *sound.Manager
	clicks   *input.ClickDetector
	scroll   *input.ScrollMeter

	rows      []page.Row
	scrollRow int
	theme     controller.Theme

	now       func() time.Time
	start     time.Time
	lastFrame time.Duration
}

// New prepares an app on an initialised screen.
func New(screen tcell.Screen, opts Options) *App {
	opts.Config.FillDefaults()
	if opts.Page == nil {
		opts.Page = page.Default()
	}
	if opts.Theme == "" {
		opts.Theme = controller.ThemeLight
	}
	if opts.FPS <= 0 {
		opts.FPS = opts.Config.FPS
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	cfg := opts.Config

	a := &App{
		screen:   screen,
		opts:     opts,
		log:      opts.Logger,
		renderer: render.New(screen, cfg.CellWidth, cfg.CellHeight),
		sound: sound.NewManager(sound.Config{
			Enabled: cfg.SoundEnabled && !opts.Mute,
			Volume:  cfg.Volume,
		}, opts.Logger),
		clicks: input.NewClickDetector(pet.Seconds(cfg.ClickDelay), cfg.DragSlop),
		scroll: input.NewScrollMeter(float64(notchRows(cfg) * cfg.CellHeight)),
		theme:  opts.Theme,
		now:    time.Now,
	}

	w, h := a.renderer.Viewport()
	caps := controller.Capabilities{Coarse: opts.Touch, ReducedMotion: opts.ReducedMotion}
	a.ctl = controller.New(cfg, caps, w, h, a.sound, rand.New(rand.NewSource(time.Now().UnixNano())), opts.Logger)
	a.layout()
	return a
}

// Run drives the frame loop until ctx is cancelled or the user quits. The
// screen is finalised before Run returns.
func (a *App) Run(ctx context.Context) error {
	a.start = a.now()
	a.restoreSession()
	defer a.teardown()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticks, stop := a.ticks()
	defer stop()

	a.frame()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !a.handleEvent(ev) {
				return nil
			}
			if ticks == nil {
				a.frame()
			}
		case <-ticks:
			a.frame()
		}
	}
}

// ticks returns the frame clock. With reduced motion there is none and the
// still pet is redrawn only after events.
func (a *App) ticks() (<-chan time.Time, func()) {
	if a.opts.ReducedMotion {
		return nil, func() {}
	}
	ticker := time.NewTicker(time.Second / time.Duration(a.opts.FPS))
	return ticker.C, ticker.Stop
}

func (a *App) clock() time.Duration {
	return a.now().Sub(a.start)
}

// frame advances the pet and redraws.
func (a *App) frame() {
	now := a.clock()
	dt := now - a.lastFrame
	a.lastFrame = now

	scene := render.Scene{Rows: a.rows, Scroll: a.scrollRow, Theme: a.theme}
	if a.opts.ReducedMotion {
		scene.Status = mood.Status(a.opts.Config.Name, pet.StateIdle, false)
		a.renderer.DrawStatic(scene)
		return
	}

	in := controller.Inputs{
		Now:            now,
		ScrollVelocity: a.scroll.Take(),
		AudioPlaying:   a.sound.AmbientPlaying(),
		Theme:          a.theme,
		Landmarks:      a.landmarks(),
	}
	in.Pointer, in.PointerMovedAt, in.HasPointer = a.clicks.Pointer()
	a.ctl.Advance(dt, in)

	scene.View = a.ctl.View()
	scene.Status = mood.Status(a.opts.Config.Name, scene.View.State, scene.View.BallOut())
	a.renderer.Draw(scene)
}

// handleEvent applies one terminal event. It returns false to quit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() != tcell.KeyRune:
		case ev.Rune() == 'q':
			return false
		case ev.Rune() == 't':
			a.toggleTheme()
		case ev.Rune() == 'm':
			a.toggleAmbient()
		}

	case *tcell.EventMouse:
		at := a.clock()
		x, y := ev.Position()
		buttons := ev.Buttons()
		switch {
		case buttons&tcell.WheelUp != 0:
			a.scrollBy(-notchRows(a.opts.Config), at)
		case buttons&tcell.WheelDown != 0:
			a.scrollBy(notchRows(a.opts.Config), at)
		}
		a.clicks.Mouse(a.renderer.ToPixels(x, y), buttons&tcell.Button1 != 0, at, a.ctl)

	case *tcell.EventResize:
		a.screen.Sync()
		w, h := a.renderer.Viewport()
		a.ctl.Resize(w, h)
		a.layout()
	}
	return true
}

func (a *App) toggleTheme() {
	if a.theme == controller.ThemeDark {
		a.theme = controller.ThemeLight
	} else {
		a.theme = controller.ThemeDark
	}
	a.log.Debug("theme", zap.String("theme", string(a.theme)))
}

// toggleAmbient flips the music flag. The pet paces to the flag even when
// no audio device could be opened.
func (a *App) toggleAmbient() {
	a.sound.SetAmbient(!a.sound.AmbientPlaying())
	a.saveSession()
}

// notchRows is how many rows one wheel notch scrolls: scrollStep pixels
// rounded to whole rows.
func notchRows(cfg pet.PetConfig) int {
	return max(1, int(math.Round(cfg.ScrollStep/float64(cfg.CellHeight))))
}

func (a *App) scrollBy(rows int, at time.Duration) {
	_, screenRows := a.screen.Size()
	limit := page.MaxScroll(a.rows, a.renderer.PageRows(screenRows))
	next := min(max(a.scrollRow+rows, 0), limit)
	if next == a.scrollRow {
		return
	}
	a.scrollRow = next
	a.scroll.Notch(at)
}

func (a *App) layout() {
	cols, rows := a.screen.Size()
	a.rows = a.opts.Page.Layout(cols)
	a.scrollRow = min(a.scrollRow, page.MaxScroll(a.rows, a.renderer.PageRows(rows)))
}

func (a *App) landmarks() []sniff.Landmark {
	_, rows := a.screen.Size()
	cfg := a.opts.Config
	lms := page.Landmarks(a.rows, a.scrollRow, a.renderer.PageRows(rows), cfg.CellWidth, cfg.CellHeight)
	return append(lms, sniff.FromConfig(cfg.Landmarks)...)
}

func (a *App) restoreSession() {
	if a.opts.SessionPath == "" {
		return
	}
	s, err := storage.LoadSession(a.opts.SessionPath)
	if err != nil {
		a.log.Debug("session not restored", zap.Error(err))
		return
	}
	if s.AmbientPlaying {
		a.sound.SetAmbient(true)
	}
}

func (a *App) saveSession() {
	if a.opts.SessionPath == "" {
		return
	}
	s := storage.Session{AmbientPlaying: a.sound.AmbientPlaying(), SavedAt: a.now().UTC()}
	if err := storage.SaveSession(s, a.opts.SessionPath); err != nil {
		a.log.Debug("session not saved", zap.Error(err))
	}
}

func (a *App) teardown() {
	a.saveSession()
	a.sound.Close()
	a.screen.Fini()
}
