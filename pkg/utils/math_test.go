package utils

import "testing"

func TestIsPowerOfTwo(t *testing.T) {
	tests := []struct {
		n    int
		want bool
	}{
		{-4, false},
		{0, false},
		{1, true},
		{2, true},
		{3, false},
		{64, true},
		{100, false},
	}

	for _, tt := range tests {
		if got := IsPowerOfTwo(tt.n); got != tt.want {
			t.Errorf("IsPowerOfTwo(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestCeilToPowerOfTwo(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{-1, 2},
		{0, 2},
		{1, 2},
		{2, 2},
		{3, 4},
		{16, 16},
		{17, 32},
		{1000, 1024},
	}

	for _, tt := range tests {
		if got := CeilToPowerOfTwo(tt.n); got != tt.want {
			t.Errorf("CeilToPowerOfTwo(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestLog2Ceil(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 2},
		{64, 6},
		{65, 7},
	}

	for _, tt := range tests {
		if got := Log2Ceil(tt.n); got != tt.want {
			t.Errorf("Log2Ceil(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}
