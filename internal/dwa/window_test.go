package dwa

import (
	"math"
	"testing"
)

func TestDynamicWindowAtRest(t *testing.T) {
	cfg := Default()
	w := DynamicWindow(State{}, &cfg)

	if math.Abs(w.VMin-(-cfg.MaxAccel*cfg.Dt)) > 1e-12 {
		t.Errorf("vmin: got %f, want %f", w.VMin, -cfg.MaxAccel*cfg.Dt)
	}
	if math.Abs(w.VMax-cfg.MaxAccel*cfg.Dt) > 1e-12 {
		t.Errorf("vmax: got %f, want %f", w.VMax, cfg.MaxAccel*cfg.Dt)
	}
	if math.Abs(w.YawMin-(-cfg.MaxDeltaYawRate*cfg.Dt)) > 1e-12 {
		t.Errorf("yawmin: got %f, want %f", w.YawMin, -cfg.MaxDeltaYawRate*cfg.Dt)
	}
	if w.Empty() {
		t.Error("window at rest should not be empty")
	}
}

func TestDynamicWindowClampedBySpec(t *testing.T) {
	cfg := Default()

	// Near top speed the reachable band is cut by the spec limit.
	w := DynamicWindow(State{V: 0.79}, &cfg)
	if w.VMax != cfg.MaxSpeed {
		t.Errorf("vmax should clamp to max speed: got %f", w.VMax)
	}
	if math.Abs(w.VMin-0.77) > 1e-12 {
		t.Errorf("vmin: got %f, want 0.77", w.VMin)
	}

	// Reversing hard, the lower bound is cut by the minimum speed.
	w = DynamicWindow(State{V: -0.49}, &cfg)
	if w.VMin != cfg.MinSpeed {
		t.Errorf("vmin should clamp to min speed: got %f", w.VMin)
	}
}

func TestDynamicWindowConsistentBounds(t *testing.T) {
	cfg := Default()
	states := []State{
		{},
		{V: 0.4, Omega: 0.3},
		{V: -0.5, Omega: -1.0},
		{V: 0.8, Omega: 1.0},
	}
	for _, s := range states {
		w := DynamicWindow(s, &cfg)
		if w.VMin > w.VMax {
			t.Errorf("state %+v: velocity bounds inverted: %f > %f", s, w.VMin, w.VMax)
		}
		if w.YawMin > w.YawMax {
			t.Errorf("state %+v: yaw bounds inverted: %f > %f", s, w.YawMin, w.YawMax)
		}
	}
}

func TestDynamicWindowDegenerate(t *testing.T) {
	cfg := Default()
	cfg.MinSpeed = 1.0 // inconsistent with MaxSpeed 0.8

	w := DynamicWindow(State{}, &cfg)
	if !w.Empty() {
		t.Errorf("expected empty window, got %+v", w)
	}
}
