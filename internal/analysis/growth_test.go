package analysis

import (
	"math"
	"testing"
)

func TestGrowthRateRecoversExponent(t *testing.T) {
	times := make([]float64, 100)
	values := make([]float64, 100)
	for i := range times {
		times[i] = float64(i) * 0.1
		values[i] = 3 * math.Exp(0.4*times[i])
	}

	rate := GrowthRate(times, values)
	if math.Abs(rate-0.4) > 1e-9 {
		t.Errorf("expected growth rate 0.4, got %v", rate)
	}

	doubling := DoublingTime(rate)
	if math.Abs(doubling-math.Ln2/0.4) > 1e-9 {
		t.Errorf("unexpected doubling time %v", doubling)
	}
}

func TestGrowthRateSkipsNonPositiveSamples(t *testing.T) {
	times := []float64{0, 1, 2, 3}
	values := []float64{0, math.E, 0, math.E * math.E * math.E}

	// only samples 1 and 3 contribute; slope between them is 1
	if rate := GrowthRate(times, values); math.Abs(rate-1) > 1e-9 {
		t.Errorf("expected growth rate 1, got %v", rate)
	}
}

func TestGrowthRateDegenerate(t *testing.T) {
	if rate := GrowthRate([]float64{1}, []float64{5}); rate != 0 {
		t.Errorf("expected 0 for a single sample, got %v", rate)
	}
	if rate := GrowthRate(nil, nil); rate != 0 {
		t.Errorf("expected 0 for empty input, got %v", rate)
	}
}

func TestDoublingTimeOfDecayingCurve(t *testing.T) {
	if d := DoublingTime(-0.2); !math.IsInf(d, 1) {
		t.Errorf("expected +Inf for a decaying curve, got %v", d)
	}
}

func TestPeak(t *testing.T) {
	times := []float64{0, 1, 2, 3}
	values := []float64{1, 7, 4, 2}

	pt, pv := Peak(times, values)
	if pt != 1 || pv != 7 {
		t.Errorf("expected peak (1, 7), got (%v, %v)", pt, pv)
	}

	if _, pv := Peak(nil, nil); pv != 0 {
		t.Errorf("expected zero peak for empty series, got %v", pv)
	}
}
