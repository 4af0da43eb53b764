package cpu

import (
	"testing"

	"github.com/born-ml/maxout/internal/tensor"
)

func benchmarkInput(b *testing.B, shape tensor.Shape) *tensor.RawTensor {
	b.Helper()

	input, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	if err != nil {
		b.Fatalf("NewRaw failed: %v", err)
	}
	data := input.AsFloat32()
	for i := range data {
		data[i] = float32((i*31)%997) * 0.01
	}
	return input
}

func BenchmarkMaxout(b *testing.B) {
	backend := New()
	input := benchmarkInput(b, tensor.Shape{32, 64, 28, 28})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := backend.Maxout(input, 2, 1); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMaxoutBackward(b *testing.B) {
	backend := New()
	input := benchmarkInput(b, tensor.Shape{32, 64, 28, 28})

	outputGrad, err := tensor.NewRaw(tensor.Shape{32, 32, 28, 28}, tensor.Float32, tensor.CPU)
	if err != nil {
		b.Fatal(err)
	}
	ogData := outputGrad.AsFloat32()
	for i := range ogData {
		ogData[i] = 1.0
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := backend.MaxoutBackward(input, outputGrad, 2, 1); err != nil {
			b.Fatal(err)
		}
	}
}
