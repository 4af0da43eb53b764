package cpu

import (
	"errors"
	"testing"

	"github.com/born-ml/maxout/internal/maxout"
	"github.com/born-ml/maxout/internal/tensor"
)

// TestMaxoutBackward_Routing tests that each output gradient lands on the
// arg-max position of its group and nowhere else.
func TestMaxoutBackward_Routing(t *testing.T) {
	backend := New()

	input, _ := tensor.NewRaw(tensor.Shape{1, 4, 1, 1}, tensor.Float32, tensor.CPU)
	copy(input.AsFloat32(), []float32{1, 5, 3, 2})

	outputGrad, _ := tensor.NewRaw(tensor.Shape{1, 2, 1, 1}, tensor.Float32, tensor.CPU)
	copy(outputGrad.AsFloat32(), []float32{1, 1})

	inputGrad, err := backend.MaxoutBackward(input, outputGrad, 2, 1)
	if err != nil {
		t.Fatalf("MaxoutBackward failed: %v", err)
	}

	if !inputGrad.Shape().Equal(input.Shape()) {
		t.Errorf("Input gradient shape: expected %v, got %v", input.Shape(), inputGrad.Shape())
	}

	// Winners: channel 1 (5 beats 1) and channel 2 (3 beats 2)
	expected := []float32{0, 1, 1, 0}
	gradData := inputGrad.AsFloat32()
	for i, exp := range expected {
		if gradData[i] != exp {
			t.Errorf("InputGrad[%d]: expected %.1f, got %.1f", i, exp, gradData[i])
		}
	}
}

// TestMaxoutBackward_Spatial tests routing with spatial positions and
// distinct gradient values.
func TestMaxoutBackward_Spatial(t *testing.T) {
	backend := New()

	input, _ := tensor.NewRaw(tensor.Shape{1, 4, 2, 2}, tensor.Float32, tensor.CPU)
	copy(input.AsFloat32(), []float32{
		1, 2, 3, 4, // channel 0
		8, 7, 2, 1, // channel 1
		0, 5, 5, 0, // channel 2
		3, 3, 9, 9, // channel 3
	})

	outputGrad, _ := tensor.NewRaw(tensor.Shape{1, 2, 2, 2}, tensor.Float32, tensor.CPU)
	copy(outputGrad.AsFloat32(), []float32{
		10, 20, 30, 40,
		50, 60, 70, 80,
	})

	inputGrad, err := backend.MaxoutBackward(input, outputGrad, 2, 1)
	if err != nil {
		t.Fatalf("MaxoutBackward failed: %v", err)
	}

	expected := []float32{
		0, 0, 30, 40,
		10, 20, 0, 0,
		0, 60, 0, 0,
		50, 0, 70, 80,
	}
	gradData := inputGrad.AsFloat32()
	for i, exp := range expected {
		if gradData[i] != exp {
			t.Errorf("InputGrad[%d]: expected %.1f, got %.1f", i, exp, gradData[i])
		}
	}
}

// TestMaxoutBackward_ChannelLast tests routing for the channel-last layout.
func TestMaxoutBackward_ChannelLast(t *testing.T) {
	backend := New()

	input, _ := tensor.NewRaw(tensor.Shape{1, 1, 2, 4}, tensor.Float32, tensor.CPU)
	copy(input.AsFloat32(), []float32{
		1, 5, 3, 2,
		4, 1, 9, 9,
	})

	outputGrad, _ := tensor.NewRaw(tensor.Shape{1, 1, 2, 2}, tensor.Float32, tensor.CPU)
	copy(outputGrad.AsFloat32(), []float32{1, 2, 3, 4})

	inputGrad, err := backend.MaxoutBackward(input, outputGrad, 2, -1)
	if err != nil {
		t.Fatalf("MaxoutBackward failed: %v", err)
	}

	// Row 1 holds an exact tie (9, 9): the lower channel index wins.
	expected := []float32{
		0, 1, 2, 0,
		3, 0, 4, 0,
	}
	gradData := inputGrad.AsFloat32()
	for i, exp := range expected {
		if gradData[i] != exp {
			t.Errorf("InputGrad[%d]: expected %.1f, got %.1f", i, exp, gradData[i])
		}
	}
}

// TestMaxoutBackward_TieBreak tests that duplicate maxima always route to
// the lowest group offset, reproducibly across repeated runs.
func TestMaxoutBackward_TieBreak(t *testing.T) {
	backend := New()

	input, _ := tensor.NewRaw(tensor.Shape{1, 4, 1, 1}, tensor.Float32, tensor.CPU)
	copy(input.AsFloat32(), []float32{2, 2, 7, 7})

	outputGrad, _ := tensor.NewRaw(tensor.Shape{1, 2, 1, 1}, tensor.Float32, tensor.CPU)
	copy(outputGrad.AsFloat32(), []float32{1, 1})

	expected := []float32{1, 0, 1, 0}
	for run := 0; run < 10; run++ {
		inputGrad, err := backend.MaxoutBackward(input, outputGrad, 2, 1)
		if err != nil {
			t.Fatalf("MaxoutBackward failed: %v", err)
		}
		gradData := inputGrad.AsFloat32()
		for i, exp := range expected {
			if gradData[i] != exp {
				t.Errorf("run %d: inputGrad[%d]: expected %.1f, got %.1f", run, i, exp, gradData[i])
			}
		}
	}
}

// TestMaxoutBackward_MatchesForwardWinner tests that backward reproduces the
// forward arg-max: routing the gradient back and reading the routed slots
// must recover the forward output values.
func TestMaxoutBackward_MatchesForwardWinner(t *testing.T) {
	backend := New()

	input, _ := tensor.NewRaw(tensor.Shape{2, 6, 3, 2}, tensor.Float64, tensor.CPU)
	inputData := input.AsFloat64()
	// Deterministic, distinct values so every group has a unique winner.
	for i := range inputData {
		inputData[i] = float64((i*37)%71) - 35.0
	}

	output, err := backend.Maxout(input, 3, 1)
	if err != nil {
		t.Fatalf("Maxout failed: %v", err)
	}

	outputGrad, _ := tensor.NewRaw(output.Shape(), tensor.Float64, tensor.CPU)
	ogData := outputGrad.AsFloat64()
	for i := range ogData {
		ogData[i] = 1.0
	}

	inputGrad, err := backend.MaxoutBackward(input, outputGrad, 3, 1)
	if err != nil {
		t.Fatalf("MaxoutBackward failed: %v", err)
	}

	// Sum of input*grad recovers the sum of the forward maxima.
	gradData := inputGrad.AsFloat64()
	var routed, forward float64
	for i := range inputData {
		routed += inputData[i] * gradData[i]
	}
	for _, v := range output.AsFloat64() {
		forward += v
	}
	if routed != forward {
		t.Errorf("Routed sum %v does not match forward sum %v", routed, forward)
	}

	// Exactly one slot per group receives the gradient.
	var ones int
	for _, g := range gradData {
		switch g {
		case 0:
		case 1:
			ones++
		default:
			t.Fatalf("Unexpected gradient value %v", g)
		}
	}
	if ones != output.NumElements() {
		t.Errorf("Expected %d routed slots, got %d", output.NumElements(), ones)
	}
}

// TestMaxoutBackward_Errors tests the validation failures.
func TestMaxoutBackward_Errors(t *testing.T) {
	backend := New()

	input, _ := tensor.NewRaw(tensor.Shape{1, 4, 1, 1}, tensor.Float32, tensor.CPU)
	outputGrad, _ := tensor.NewRaw(tensor.Shape{1, 2, 1, 1}, tensor.Float32, tensor.CPU)

	if _, err := backend.MaxoutBackward(nil, outputGrad, 2, 1); !errors.Is(err, maxout.ErrMissingInput) {
		t.Errorf("nil input: expected ErrMissingInput, got %v", err)
	}
	if _, err := backend.MaxoutBackward(input, nil, 2, 1); !errors.Is(err, maxout.ErrMissingOutput) {
		t.Errorf("nil output gradient: expected ErrMissingOutput, got %v", err)
	}
	if _, err := backend.MaxoutBackward(input, outputGrad, 1, 1); !errors.Is(err, maxout.ErrInvalidArgument) {
		t.Errorf("groups=1: expected ErrInvalidArgument, got %v", err)
	}

	badGrad, _ := tensor.NewRaw(tensor.Shape{1, 4, 1, 1}, tensor.Float32, tensor.CPU)
	if _, err := backend.MaxoutBackward(input, badGrad, 2, 1); !errors.Is(err, maxout.ErrInvalidArgument) {
		t.Errorf("mismatched gradient shape: expected ErrInvalidArgument, got %v", err)
	}

	wrongType, _ := tensor.NewRaw(tensor.Shape{1, 2, 1, 1}, tensor.Float64, tensor.CPU)
	if _, err := backend.MaxoutBackward(input, wrongType, 2, 1); !errors.Is(err, maxout.ErrInvalidArgument) {
		t.Errorf("mismatched gradient dtype: expected ErrInvalidArgument, got %v", err)
	}
}

// TestMaxoutBackward_ShapeRoundTrip tests that the input gradient always has
// the forward input's shape.
func TestMaxoutBackward_ShapeRoundTrip(t *testing.T) {
	backend := New()

	cases := []struct {
		shape  tensor.Shape
		groups int
		axis   int
	}{
		{tensor.Shape{1, 4, 1, 1}, 2, 1},
		{tensor.Shape{3, 12, 5, 4}, 4, 1},
		{tensor.Shape{2, 3, 4, 8}, 2, -1},
		{tensor.Shape{2, 3, 10, 4}, 5, 2},
	}

	for _, tc := range cases {
		input, _ := tensor.NewRaw(tc.shape, tensor.Float32, tensor.CPU)
		outShape, err := maxout.InferShape(tc.shape, maxout.Config{Groups: tc.groups, Axis: tc.axis})
		if err != nil {
			t.Fatalf("InferShape(%v) failed: %v", tc.shape, err)
		}
		outputGrad, _ := tensor.NewRaw(outShape, tensor.Float32, tensor.CPU)

		inputGrad, err := backend.MaxoutBackward(input, outputGrad, tc.groups, tc.axis)
		if err != nil {
			t.Fatalf("MaxoutBackward(%v) failed: %v", tc.shape, err)
		}
		if !inputGrad.Shape().Equal(tc.shape) {
			t.Errorf("Input gradient shape: expected %v, got %v", tc.shape, inputGrad.Shape())
		}
	}
}
