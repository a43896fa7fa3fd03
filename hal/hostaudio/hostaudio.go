// Package hostaudio plays tone effector output through the desktop audio device.
package hostaudio

import (
	"errors"
	"sync"

	"superloop/core"
)

// SampleRate is the host audio output rate
const SampleRate = 44100

// ErrUnavailable is returned when the build has no audio backend
var ErrUnavailable = errors.New("host audio: not available in this build (requires cgo)")

const numChannels = 2

// synth mixes square waves for the tone channels
type synth struct {
	mu     sync.Mutex
	on     [numChannels]bool
	freq   [numChannels]uint16
	phase  [numChannels]uint32 // Samples into the current period
	volume int16
}

func newSynth() *synth {
	return &synth{volume: 6000}
}

func (s *synth) SetToneFrequency(ch core.ToneChannel, hz uint16) {
	if int(ch) >= numChannels {
		return
	}
	s.mu.Lock()
	s.freq[ch] = hz
	s.mu.Unlock()
}

func (s *synth) ToneOn(ch core.ToneChannel) {
	if int(ch) >= numChannels {
		return
	}
	s.mu.Lock()
	s.on[ch] = true
	s.mu.Unlock()
}

func (s *synth) ToneOff(ch core.ToneChannel) {
	if int(ch) >= numChannels {
		return
	}
	s.mu.Lock()
	s.on[ch] = false
	s.phase[ch] = 0
	s.mu.Unlock()
}

// sample returns the next mixed sample
func (s *synth) sample() int16 {
	var mix int32
	for ch := 0; ch < numChannels; ch++ {
		if !s.on[ch] || s.freq[ch] == 0 {
			continue
		}
		period := uint32(SampleRate) / uint32(s.freq[ch])
		if period < 2 {
			period = 2
		}
		if s.phase[ch] < period/2 {
			mix += int32(s.volume)
		} else {
			mix -= int32(s.volume)
		}
		s.phase[ch]++
		if s.phase[ch] >= period {
			s.phase[ch] = 0
		}
	}
	if mix > 32767 {
		mix = 32767
	} else if mix < -32768 {
		mix = -32768
	}
	return int16(mix)
}

// Read fills p with 16-bit little-endian stereo samples
func (s *synth) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(p) &^ 3
	for i := 0; i < n; i += 4 {
		v := s.sample()
		p[i+0] = byte(v)
		p[i+1] = byte(v >> 8)
		p[i+2] = byte(v)
		p[i+3] = byte(v >> 8)
	}
	return n, nil
}
