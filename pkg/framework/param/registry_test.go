package param

import (
	"math"
	"testing"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	a := New(1, "Base Frequency").ShortName("base").Range(20, 2000).Default(220).Build()
	b := New(2, "Wave 1 Gain").ShortName("gain1").Range(-60, 0).Default(-12).Build()
	r.Add(a, b)
	r.Add(New(1, "Duplicate").Build())

	if r.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", r.Count())
	}
	if r.Get(1) != a || r.GetByIndex(1) != b {
		t.Error("lookup by ID or index returned the wrong parameter")
	}
	if r.GetByIndex(5) != nil || r.GetByIndex(-1) != nil {
		t.Error("out of range index should return nil")
	}
	if r.FindByName("BASE") != a || r.FindByName("wave 1 gain") != b {
		t.Error("FindByName should match short name or name ignoring case")
	}
	if r.FindByName("missing") != nil {
		t.Error("FindByName should return nil for unknown names")
	}

	a.SetPlainValue(1000)
	a.Reset()
	if got := a.GetPlainValue(); math.Abs(got-220) > 1e-9 {
		t.Errorf("after Reset got %f, want 220", got)
	}
}

func TestParameterClamping(t *testing.T) {
	p := New(1, "Test").Range(-1, 1).Build()

	p.SetPlainValue(5)
	if p.GetValue() != 1 {
		t.Errorf("GetValue() = %f, want 1", p.GetValue())
	}
	p.SetValue(-3)
	if p.GetPlainValue() != -1 {
		t.Errorf("GetPlainValue() = %f, want -1", p.GetPlainValue())
	}
}
