/*
NAME
  variables_test.go

DESCRIPTION
  variables_test.go tests the string-keyed Variable descriptor table and
  Core.UpdateParameter.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package stabilize

import "testing"

func TestFindVariableKnownName(t *testing.T) {
	v, ok := FindVariable(KeyMaxCorrection)
	if !ok {
		t.Fatalf("FindVariable(%q) not found", KeyMaxCorrection)
	}
	if v.Name != KeyMaxCorrection {
		t.Errorf("Name = %q, want %q", v.Name, KeyMaxCorrection)
	}
}

func TestFindVariableUnknownName(t *testing.T) {
	if _, ok := FindVariable("NotARealField"); ok {
		t.Error("expected FindVariable to report not found for an unknown name")
	}
}

func TestVariableUpdateAppliesParsedValue(t *testing.T) {
	v, ok := FindVariable(KeyFeatureCount)
	if !ok {
		t.Fatal("FindVariable(FeatureCount) not found")
	}
	p := DefaultParams()
	v.Update(&p, "250")
	if p.FeatureCount != 250 {
		t.Errorf("FeatureCount = %d, want 250", p.FeatureCount)
	}
}

func TestVariableUpdateEdgeModeEnum(t *testing.T) {
	v, ok := FindVariable(KeyEdgeMode)
	if !ok {
		t.Fatal("FindVariable(EdgeMode) not found")
	}
	p := DefaultParams()
	v.Update(&p, "Crop")
	if p.EdgeMode != EdgeCrop {
		t.Errorf("EdgeMode = %v, want Crop", p.EdgeMode)
	}
}

func TestCoreUpdateParameterAppliesAndValidates(t *testing.T) {
	c := NewCore(testLogger())
	if err := c.Initialize(640, 480, DefaultParams()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if _, err := c.UpdateParameter(KeyMaxCorrection, "45"); err != nil {
		t.Fatalf("UpdateParameter failed: %v", err)
	}
	if got := c.Params().MaxCorrection; got != 45 {
		t.Errorf("MaxCorrection = %v, want 45", got)
	}
}

func TestCoreUpdateParameterClampsOutOfRange(t *testing.T) {
	c := NewCore(testLogger())
	if err := c.Initialize(640, 480, DefaultParams()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	reports, err := c.UpdateParameter(KeySmoothingRadius, "-10")
	if err != nil {
		t.Fatalf("UpdateParameter failed: %v", err)
	}
	if len(reports) == 0 {
		t.Error("expected a clamp report for a negative SmoothingRadius")
	}
	if c.Params().SmoothingRadius < 1 {
		t.Errorf("SmoothingRadius = %d, want clamped to >= 1", c.Params().SmoothingRadius)
	}
}

func TestCoreUpdateParameterUnknownNameErrors(t *testing.T) {
	c := NewCore(testLogger())
	if err := c.Initialize(640, 480, DefaultParams()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if _, err := c.UpdateParameter("NotARealField", "1"); err == nil {
		t.Error("expected an error updating an unknown parameter name")
	}
}
