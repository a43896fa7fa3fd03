package protocol

import "testing"

func TestScratchOutput(t *testing.T) {
	scratch := NewScratchOutput()

	scratch.Output([]byte{1, 2, 3})
	scratch.Output([]byte{4, 5})

	result := scratch.Result()
	if len(result) != 5 || result[4] != 5 {
		t.Errorf("Expected [1 2 3 4 5], got %v", result)
	}
	if scratch.Free() != MessageMax-5 {
		t.Errorf("Expected %d free, got %d", MessageMax-5, scratch.Free())
	}

	scratch.Reset()
	if len(scratch.Result()) != 0 {
		t.Error("Reset should empty the buffer")
	}
}

func TestScratchOutputTruncates(t *testing.T) {
	scratch := NewScratchOutput()
	scratch.Output(make([]byte, MessageMax+10))

	if len(scratch.Result()) != MessageMax {
		t.Errorf("Expected %d bytes, got %d", MessageMax, len(scratch.Result()))
	}
	if scratch.Free() != 0 {
		t.Errorf("Expected no free space, got %d", scratch.Free())
	}
}

func TestFifoBuffer(t *testing.T) {
	fifo := NewFifoBuffer(10)

	n := fifo.Write([]byte{1, 2, 3, 4, 5})
	if n != 5 || fifo.Available() != 5 {
		t.Fatalf("Expected 5 written and available, got %d / %d", n, fifo.Available())
	}

	fifo.Pop(2)
	data := fifo.Data()
	if len(data) != 3 || data[0] != 3 {
		t.Errorf("Expected [3 4 5], got %v", data)
	}

	// Capacity is 9 usable bytes
	if n := fifo.Write([]byte{6, 7, 8, 9, 10, 11, 12}); n != 6 {
		t.Errorf("Expected 6 bytes written before full, got %d", n)
	}
	if fifo.Free() != 0 {
		t.Errorf("Expected full buffer, %d free", fifo.Free())
	}
}

func TestFifoBufferWrappedData(t *testing.T) {
	fifo := NewFifoBuffer(8)
	fifo.Write([]byte{1, 2, 3, 4, 5, 6})
	fifo.Pop(5)
	fifo.Write([]byte{7, 8, 9, 10})

	expected := []byte{6, 7, 8, 9, 10}
	data := fifo.Data()
	if len(data) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, data)
	}
	for i := range expected {
		if data[i] != expected[i] {
			t.Errorf("Byte %d: expected %d, got %d", i, expected[i], data[i])
		}
	}

	fifo.Pop(100)
	if fifo.Available() != 0 {
		t.Errorf("Pop past the end should empty the buffer, %d left", fifo.Available())
	}
}
