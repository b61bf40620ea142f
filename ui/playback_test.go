package ui

import "testing"

func TestPlaybackSpeedClamps(t *testing.T) {
	p := NewPlayback()

	p.Slower()
	if p.Speed != MinSpeed {
		t.Errorf("Speed after Slower at min = %d, want %d", p.Speed, MinSpeed)
	}

	for i := 0; i < 2*MaxSpeed; i++ {
		p.Faster()
	}
	if p.Speed != MaxSpeed {
		t.Errorf("Speed after many Faster = %d, want %d", p.Speed, MaxSpeed)
	}
}

func TestPlaybackStepsThisFrame(t *testing.T) {
	tests := []struct {
		name string
		p    Playback
		want int
	}{
		{"normal", Playback{Speed: 3}, 3},
		{"paused", Playback{Speed: 3, Paused: true}, 0},
		{"fast forward", Playback{Speed: 3, FastForward: true}, FastForwardSpeed},
		{"paused wins over fast forward", Playback{Speed: 3, Paused: true, FastForward: true}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.StepsThisFrame(); got != tt.want {
				t.Errorf("StepsThisFrame() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPlaybackToggles(t *testing.T) {
	p := NewPlayback()
	p.TogglePause()
	p.ToggleFastForward()
	if !p.Paused || !p.FastForward {
		t.Fatalf("toggles not applied: %+v", *p)
	}
	if got := p.EffectiveSpeed(); got != FastForwardSpeed {
		t.Errorf("EffectiveSpeed() = %d, want %d", got, FastForwardSpeed)
	}
	p.TogglePause()
	p.ToggleFastForward()
	if p.Paused || p.FastForward {
		t.Errorf("toggles not reverted: %+v", *p)
	}
}
