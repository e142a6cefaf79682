package game

import "testing"

func TestSmootherstep(t *testing.T) {
	cases := []struct {
		in, want float32
	}{
		{-0.5, 0},
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{1.5, 1},
	}
	for _, c := range cases {
		if got := Smootherstep(c.in); !Float32ApproxEq(got, c.want) {
			t.Fatalf("Smootherstep(%v): expected %v, got %v", c.in, c.want, got)
		}
	}
}

func TestRound32(t *testing.T) {
	cases := []struct {
		in        float32
		precision int
		want      float32
	}{
		{1.23456, 3, 1.235},
		{-0.0004, 3, 0},
		{12.5, 0, 13},
	}
	for _, c := range cases {
		if got := Round32(c.in, c.precision); !Float32ApproxEq(got, c.want) {
			t.Fatalf("Round32(%v, %d): expected %v, got %v", c.in, c.precision, c.want, got)
		}
	}
}

func TestSineEaseInOutEndpoints(t *testing.T) {
	if got := SineEaseInOut(0); got != 0 {
		t.Fatalf("expected 0 at the start, got %v", got)
	}
	if got := SineEaseInOut(1); !Float32ApproxEq(got, 1) {
		t.Fatalf("expected 1 at the end, got %v", got)
	}
	if got := SineEaseInOut(0.25); got >= 0.25 {
		t.Fatalf("expected a slow start below linear, got %v", got)
	}
}

func TestMedian32RejectsSpike(t *testing.T) {
	vals := []float32{0, 0, 1, 0, 0}
	if got := Median32(vals); got != 0 {
		t.Fatalf("expected spike to be rejected, got %v", got)
	}
	if vals[2] != 1 {
		t.Fatalf("input slice was modified")
	}
}

func TestMedian32Sorted(t *testing.T) {
	if got := Median32([]float32{0.9, 0.1, 0.5}); got != 0.5 {
		t.Fatalf("expected 0.5, got %v", got)
	}
}
