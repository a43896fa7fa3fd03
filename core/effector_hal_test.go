package core

import "testing"

func TestLEDChannelNames(t *testing.T) {
	for ch := LEDWhite; ch < NumLEDChannels; ch++ {
		name := ch.String()
		got, ok := ParseLEDChannel(name)
		if !ok || got != ch {
			t.Errorf("ParseLEDChannel(%q) = %d, %v; want %d", name, got, ok, ch)
		}
	}

	if _, ok := ParseLEDChannel("magenta"); ok {
		t.Error("Expected unknown LED name to fail")
	}
	if s := NumLEDChannels.String(); s != "led11" {
		t.Errorf("out of range String() = %q", s)
	}
}

func TestMustDriversPanicWhenUnset(t *testing.T) {
	SetToneDriver(nil)
	defer func() {
		if recover() == nil {
			t.Error("Expected MustTone to panic without a driver")
		}
	}()
	MustTone()
}
