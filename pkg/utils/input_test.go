package utils

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestIsSkipKey(t *testing.T) {
	tests := []struct {
		key  ebiten.Key
		want bool
	}{
		{ebiten.KeyEscape, true},
		{ebiten.KeySpace, true},
		{ebiten.KeyEnter, false},
		{ebiten.KeyA, false},
	}
	for _, tt := range tests {
		if got := IsSkipKey(tt.key); got != tt.want {
			t.Errorf("IsSkipKey(%v) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestSafeArea(t *testing.T) {
	a := SafeArea{Top: 44, Bottom: 34}
	if got := a.Vertical(); got != 78 {
		t.Errorf("Vertical() = %d, want 78", got)
	}
	if got := (SafeArea{Top: -5, Bottom: 10}).Clamp(); got != (SafeArea{Top: 0, Bottom: 10}) {
		t.Errorf("Clamp() = %+v", got)
	}
}
