package sound

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	sampleRate   = beep.SampleRate(44100)
	pantThrottle = 2 * time.Second
	barkGap      = 10 * time.Millisecond
	pantSpacing  = 120 * time.Millisecond
	pantBlip     = 80 * time.Millisecond
)

// Cues are the short sounds tied to behavior changes.
type Cues interface {
	Bark()
	Jump()
	Whimper()
	Pant()
}

// Nop plays nothing.
type Nop struct{}

func (Nop) Bark()    {}
func (Nop) Jump()    {}
func (Nop) Whimper() {}
func (Nop) Pant()    {}

// Config controls the Manager.
type Config struct {
	Enabled bool
	Volume  float64 // 0..1
}

// Manager plays cues through the system speaker. The speaker is opened on
// first use and a failure leaves the manager silent for good.
type Manager struct {
	mu          sync.Mutex
	cfg         Config
	log         *zap.Logger
	mixer       *beep.Mixer
	ambient     *beep.Ctrl
	initialized bool
	silent      bool
	ambientOn   bool
	pant        *rate.Limiter

	now  func() time.Time
	open func() error
	play func(beep.Streamer)
}

// NewManager creates a manager; nothing touches the audio device until the
// first cue.
func NewManager(cfg Config, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{
		cfg:   cfg,
		log:   log,
		mixer: &beep.Mixer{},
		pant:  rate.NewLimiter(rate.Every(pantThrottle), 1),
		now:   time.Now,
	}
	m.open = m.openSpeaker
	m.play = m.mixStreamer
	return m
}

func (m *Manager) openSpeaker() error {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(m.mixer)
	return nil
}

func (m *Manager) mixStreamer(s beep.Streamer) {
	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()
}

// ready opens the device on first use. Callers hold m.mu.
func (m *Manager) ready() bool {
	if !m.cfg.Enabled || m.silent {
		return false
	}
	if m.initialized {
		return true
	}
	if err := m.open(); err != nil {
		m.silent = true
		m.log.Debug("audio unavailable, continuing silently", zap.Error(err))
		return false
	}
	m.initialized = true
	return true
}

func (m *Manager) emit(s beep.Streamer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.ready() {
		return
	}
	m.play(withVolume(s, m.cfg.Volume))
}

// Bark is two quick descending square-wave yaps.
func (m *Manager) Bark() {
	m.emit(beep.Seq(
		NewSweep(sampleRate, WaveSquare, 600, 400, 120*time.Millisecond, 0.15),
		beep.Silence(sampleRate.N(barkGap)),
		NewSweep(sampleRate, WaveSquare, 550, 350, 100*time.Millisecond, 0.12),
	))
}

// Jump is a rising triangle chirp.
func (m *Manager) Jump() {
	m.emit(NewSweep(sampleRate, WaveTriangle, 200, 500, 150*time.Millisecond, 0.2))
}

// Whimper is a falling sine with a wobble.
func (m *Manager) Whimper() {
	m.emit(NewSweep(sampleRate, WaveSine, 800, 300, 300*time.Millisecond, 0.15).
		Exponential().
		Wobble(8, 30))
}

// Pant is three short breaths, at most once every two seconds.
func (m *Manager) Pant() {
	m.mu.Lock()
	allowed := m.pant.AllowN(m.now(), 1)
	m.mu.Unlock()
	if !allowed {
		return
	}

	var parts []beep.Streamer
	for i := 0; i < 3; i++ {
		freq := 400.0
		if i%2 == 1 {
			freq = 300
		}
		parts = append(parts,
			NewSweep(sampleRate, WaveSine, freq, freq, pantBlip, 0.1),
			beep.Silence(sampleRate.N(pantSpacing-pantBlip)),
		)
	}
	m.emit(beep.Seq(parts...))
}

// SetAmbient turns the ambient bed on or off. The flag is tracked even when
// the device is unavailable.
func (m *Manager) SetAmbient(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ambientOn = on
	if !m.ready() {
		return
	}
	if m.ambient == nil {
		if !on {
			return
		}
		m.ambient = &beep.Ctrl{Streamer: NewAmbientGenerator(sampleRate)}
		m.play(withVolume(m.ambient, m.cfg.Volume))
		return
	}
	speaker.Lock()
	m.ambient.Paused = !on
	speaker.Unlock()
}

// AmbientPlaying reports the ambient flag.
func (m *Manager) AmbientPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ambientOn
}

// Close stops everything and releases the device.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Lock()
	if m.ambient != nil {
		m.ambient.Paused = true
	}
	m.mixer.Clear()
	speaker.Unlock()
	speaker.Close()

	m.ambient = nil
	m.initialized = false
}

// math.Log2(0) is -Inf, so zero volume is handled as silence.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol >= 1 {
		return s
	}
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
