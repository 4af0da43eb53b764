package tensor

// Backend defines the interface that compute backends must implement.
// It carries the two entry points of the maxout operator pair; the
// host graph framework dispatches to whichever device implementation
// it has been handed.
//
// Implementations:
//   - CPU: pure Go kernels with chunked goroutine parallelism
type Backend interface {
	// Name returns the backend name.
	Name() string

	// Device returns the compute device this backend operates on.
	Device() Device

	// Maxout reduces the channel dimension of a rank-4 input by taking,
	// for each run of `groups` consecutive channels, their element-wise
	// maximum. The output shape equals the input shape with the channel
	// dimension divided by groups.
	Maxout(input *RawTensor, groups, axis int) (*RawTensor, error)

	// MaxoutBackward computes the gradient of Maxout w.r.t. its input.
	// It recomputes the forward arg-max from the input and routes each
	// output gradient to the winning input position; all other positions
	// receive zero.
	MaxoutBackward(input, outputGrad *RawTensor, groups, axis int) (*RawTensor, error)
}
