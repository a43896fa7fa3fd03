//go:build !tinygo && !cgo

package hostaudio

// Driver is unavailable without cgo
type Driver struct {
	*synth
}

// New always fails in builds without an audio backend
func New() (*Driver, error) {
	return nil, ErrUnavailable
}

// Close is a no-op
func (d *Driver) Close() error {
	return nil
}
