package qsound

import (
	"github.com/arl/blip"

	"cps2/emu/log"
	"cps2/hw/hwdefs"
)

const (
	MaxSampleRate     = 96000
	DefaultSampleRate = 48000

	maxSamplesPerFrame = MaxSampleRate / 50 * 2

	// NativeRate is the output rate of the DSP, in Hz.
	NativeRate = float64(hwdefs.QSoundClock) / hwdefs.QSoundClocksPerSample

	// upper bound of native samples per video frame (~403.1).
	maxNativePerFrame = 405
)

// A Source renders the DSP stereo output at NativeRate.
type Source interface {
	Render(left, right []int16)
}

// Mixer resamples the Q-Sound output to the host sample rate and applies the
// master volume.
type Mixer struct {
	bufleft  *blip.Buffer
	bufright *blip.Buffer

	prevLeft  int32
	prevRight int32

	inleft  [maxNativePerFrame]int16
	inright [maxNativePerFrame]int16
	outbuf  [maxSamplesPerFrame * 2]int16

	frac       float64 // fraction of native sample carried to the next frame
	volume     float64
	sampleRate int
}

func NewMixer(sampleRate int) *Mixer {
	if sampleRate <= 0 || sampleRate > MaxSampleRate {
		log.ModSound.WarnZ("unsupported sample rate, using default").
			Int("rate", sampleRate).
			Int("default", DefaultSampleRate).
			End()
		sampleRate = DefaultSampleRate
	}
	m := &Mixer{
		bufleft:    blip.NewBuffer(maxSamplesPerFrame),
		bufright:   blip.NewBuffer(maxSamplesPerFrame),
		sampleRate: sampleRate,
		volume:     1,
	}
	m.Reset()
	return m
}

func (m *Mixer) Reset() {
	m.prevLeft = 0
	m.prevRight = 0
	m.frac = 0
	m.bufleft.Clear()
	m.bufright.Clear()
	m.bufleft.SetRates(hwdefs.QSoundClock, float64(m.sampleRate))
	m.bufright.SetRates(hwdefs.QSoundClock, float64(m.sampleRate))
}

// SampleRate returns the host sample rate.
func (m *Mixer) SampleRate() int { return m.sampleRate }

// SetVolume sets the master volume, clamped to [0, 1].
func (m *Mixer) SetVolume(v float64) {
	m.volume = min(max(v, 0), 1)
}

func (m *Mixer) Volume() float64 { return m.volume }

// EndFrame pulls one video frame of DSP output from src (silence if nil) and
// returns it resampled, as interleaved stereo samples. The returned slice is
// only valid until the next call.
func (m *Mixer) EndFrame(src Source) []int16 {
	m.frac += NativeRate / hwdefs.RefreshRate
	n := int(m.frac)
	m.frac -= float64(n)

	left, right := m.inleft[:n], m.inright[:n]
	clear(left)
	clear(right)
	if src != nil {
		src.Render(left, right)
	}

	for i := range n {
		t := uint64(i * hwdefs.QSoundClocksPerSample)

		l := int32(float64(left[i]) * m.volume)
		if d := l - m.prevLeft; d != 0 {
			m.bufleft.AddDelta(t, d)
		}
		m.prevLeft = l

		r := int32(float64(right[i]) * m.volume)
		if d := r - m.prevRight; d != 0 {
			m.bufright.AddDelta(t, d)
		}
		m.prevRight = r
	}

	m.bufleft.EndFrame(n * hwdefs.QSoundClocksPerSample)
	m.bufright.EndFrame(n * hwdefs.QSoundClocksPerSample)

	count := m.bufleft.ReadSamples(m.outbuf[:], maxSamplesPerFrame, blip.Stereo)
	m.bufright.ReadSamples(m.outbuf[1:], maxSamplesPerFrame, blip.Stereo)
	return m.outbuf[:count*2]
}
