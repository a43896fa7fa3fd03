//go:build !tinygo && cgo

package hostaudio

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Driver is a core.ToneDriver playing square waves on the host sound card
type Driver struct {
	*synth
	player *audio.Player
}

// New opens the audio device and starts playback (silent until a tone is on).
// Only one Driver may exist per process.
func New() (*Driver, error) {
	s := newSynth()

	ctx := audio.NewContext(SampleRate)
	p, err := ctx.NewPlayer(s)
	if err != nil {
		return nil, err
	}
	p.SetBufferSize(50 * time.Millisecond)
	p.Play()

	return &Driver{synth: s, player: p}, nil
}

// Close stops playback
func (d *Driver) Close() error {
	return d.player.Close()
}
