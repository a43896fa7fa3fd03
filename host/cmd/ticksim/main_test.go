package main

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestStopReason(t *testing.T) {
	failure := errors.New("dispatcher already initialized")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"clean", nil, nil},
		{"deadline", context.DeadlineExceeded, nil},
		{"interrupt", context.Canceled, nil},
		{"wrapped deadline", fmt.Errorf("loop: %w", context.DeadlineExceeded), nil},
		{"wrapped cancel", fmt.Errorf("loop: %w", context.Canceled), nil},
		{"failure", failure, failure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stopReason(tt.err); got != tt.want {
				t.Errorf("stopReason(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
