package core

import "testing"

func TestRuntimeConfigWithScreen(t *testing.T) {
	base := DefaultConfig()
	if base.ScreenW != 80 || base.ScreenH != 24 {
		t.Fatalf("DefaultConfig() screen = %dx%d, want 80x24", base.ScreenW, base.ScreenH)
	}

	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{"sized", 120, 40, 120, 40},
		{"zero keeps defaults", 0, 0, 80, 24},
		{"negative width", -1, 30, 80, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := base.WithScreen(tt.w, tt.h)
			if got.ScreenW != tt.wantW || got.ScreenH != tt.wantH {
				t.Errorf("WithScreen(%d, %d) = %dx%d, want %dx%d", tt.w, tt.h, got.ScreenW, got.ScreenH, tt.wantW, tt.wantH)
			}
		})
	}
	if base.ScreenW != 80 {
		t.Error("WithScreen modified the receiver")
	}
}
