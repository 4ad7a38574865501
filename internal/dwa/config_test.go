package dwa

import (
	"errors"
	"math"
	"testing"
)

func TestParseShape(t *testing.T) {
	cases := []struct {
		name string
		want Shape
		ok   bool
	}{
		{"circle", ShapeCircle, true},
		{"rectangle", ShapeRectangle, true},
		{"triangle", 0, false},
		{"", 0, false},
		{"Circle", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseShape(tc.name)
		if tc.ok {
			if err != nil {
				t.Errorf("ParseShape(%q): %v", tc.name, err)
			}
			if got != tc.want {
				t.Errorf("ParseShape(%q) = %v, want %v", tc.name, got, tc.want)
			}
			continue
		}
		if !errors.Is(err, ErrUnknownShape) {
			t.Errorf("ParseShape(%q): got %v, want ErrUnknownShape", tc.name, err)
		}
	}
}

func TestShapeString(t *testing.T) {
	if ShapeCircle.String() != "circle" || ShapeRectangle.String() != "rectangle" {
		t.Error("shape names changed")
	}
}

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"negative horizon", func(c *Config) { c.PredictTime = -1 }},
		{"zero v resolution", func(c *Config) { c.VResolution = 0 }},
		{"zero yaw resolution", func(c *Config) { c.YawResolution = 0 }},
		{"zero radius", func(c *Config) { c.Radius = 0 }},
		{"bad shape", func(c *Config) { c.Shape = Shape(7) }},
		{"flat rectangle", func(c *Config) { c.Shape = ShapeRectangle; c.Width = 0 }},
	}
	for _, tc := range cases {
		cfg := Default()
		tc.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestValidateAllowsEmptyWindow(t *testing.T) {
	// MinSpeed above MaxSpeed degrades to the zero command at plan time and
	// must pass construction.
	cfg := Default()
	cfg.MinSpeed = 1.0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("inverted speed band should validate: %v", err)
	}
}

func TestOutlineCircle(t *testing.T) {
	cfg := Default()
	s := State{X: 3, Y: -2, Yaw: 0.7}

	pts := cfg.Outline(s)
	if len(pts) != circleSegments+1 {
		t.Fatalf("got %d points, want %d", len(pts), circleSegments+1)
	}
	if pts[0].Dist(pts[len(pts)-1]) > 1e-9 {
		t.Error("outline must be a closed loop")
	}
	for i, p := range pts {
		d := p.Dist(s.Pos())
		if math.Abs(d-cfg.Radius) > 1e-9 {
			t.Fatalf("point %d at distance %f, want %f", i, d, cfg.Radius)
		}
	}
}

func TestOutlineRectangle(t *testing.T) {
	cfg := Default()
	cfg.Shape = ShapeRectangle
	s := State{X: 1, Y: 1, Yaw: math.Pi / 2}

	pts := cfg.Outline(s)
	if len(pts) != 5 {
		t.Fatalf("got %d points, want 5", len(pts))
	}
	if pts[0] != pts[4] {
		t.Error("outline must be a closed loop")
	}
	// At yaw pi/2 the body x axis points along world +y: the front-left
	// corner (length/2, width/2) lands at (x - width/2, y + length/2).
	want := Point{X: s.X - cfg.Width/2, Y: s.Y + cfg.Length/2}
	if math.Abs(pts[1].X-want.X) > 1e-9 || math.Abs(pts[1].Y-want.Y) > 1e-9 {
		t.Errorf("front-left corner: got %+v, want %+v", pts[1], want)
	}
}

func TestHeadingRay(t *testing.T) {
	cfg := Default()
	s := State{X: 2, Y: 3, Yaw: 0}

	from, to := cfg.HeadingRay(s)
	if from != s.Pos() {
		t.Errorf("ray base: got %+v", from)
	}
	if math.Abs(to.X-(s.X+cfg.Radius)) > 1e-9 || math.Abs(to.Y-s.Y) > 1e-9 {
		t.Errorf("ray tip: got %+v", to)
	}

	cfg.Shape = ShapeRectangle
	_, to = cfg.HeadingRay(s)
	if math.Abs(to.X-(s.X+cfg.Length/2)) > 1e-9 {
		t.Errorf("rectangular ray tip: got %+v", to)
	}
}
