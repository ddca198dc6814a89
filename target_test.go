package simulador

import (
	"errors"
	"testing"
)

func TestTargetValidate(t *testing.T) {
	fundA := &FundRecord{Code: "A", Name: "Fund A"}
	fundB := &FundRecord{Code: "B", Name: "Fund B"}

	tests := []struct {
		name    string
		target  Target
		wantErr bool
	}{
		{"exact", targetOf(
			TargetAllocation{Fund: fundA, Weight: 60},
			TargetAllocation{Fund: fundB, Weight: 40},
		), false},
		{"within tolerance", targetOf(
			TargetAllocation{Fund: fundA, Weight: 99.6},
		), false},
		{"below tolerance", targetOf(
			TargetAllocation{Fund: fundA, Weight: 97},
		), true},
		{"above tolerance", targetOf(
			TargetAllocation{Fund: fundA, Weight: 101},
		), true},
		{"duplicate fund", targetOf(
			TargetAllocation{Fund: fundA, Weight: 50},
			TargetAllocation{Fund: fundA, Weight: 50},
		), true},
		{"negative weight", targetOf(
			TargetAllocation{Fund: fundA, Weight: 150},
			TargetAllocation{Fund: fundB, Weight: -50},
		), true},
		{"unresolved fund", targetOf(
			TargetAllocation{Fund: nil, Weight: 100},
		), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.target.Validate(0.5)
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestTargetValidate_SumError(t *testing.T) {
	fundA := &FundRecord{Code: "A", Name: "Fund A"}
	err := targetOf(TargetAllocation{Fund: fundA, Weight: 97}).Validate(0.5)

	var invalid *InvalidTargetError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTargetError, got %v", err)
	}
	if !invalid.Sum.Equal(97) || !invalid.Tolerance.Equal(0.5) {
		t.Errorf("error = %+v, want sum 97 and tolerance 0.5", invalid)
	}
}

func TestTargetValueByFund(t *testing.T) {
	fundA := &FundRecord{Code: "A", Name: "Fund A"}
	fundB := &FundRecord{Code: "B", Name: "Fund B"}
	target := targetOf(
		TargetAllocation{Fund: fundA, Weight: 30},
		TargetAllocation{Fund: fundB, Weight: 70},
	)

	values := target.valueByFund(M(10000))
	if !values["A"].Equal(M(3000)) {
		t.Errorf("A = %s, want %s", values["A"], M(3000))
	}
	if !values["B"].Equal(M(7000)) {
		t.Errorf("B = %s, want %s", values["B"], M(7000))
	}
}
