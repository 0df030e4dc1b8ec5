package autodiff

import (
	"fmt"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/autodiff/ops"
	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/tensor"
)

// GradientTape logs forward operations so that Backward can replay them
// in reverse and chain gradients from an output back to every tensor
// that influenced it.
//
// The tape survives across iterations: Clear drops the logged
// operations but keeps the recording flag and the constant set, so an
// optimization loop marks its frozen weights once and clears between
// steps.
type GradientTape struct {
	log       []ops.Operation
	recording bool
	frozen    map[*tensor.RawTensor]struct{}
}

// NewGradientTape creates an empty, non-recording tape.
func NewGradientTape() *GradientTape {
	return &GradientTape{
		log:    make([]ops.Operation, 0, 64),
		frozen: make(map[*tensor.RawTensor]struct{}),
	}
}

// StartRecording turns on operation logging.
func (t *GradientTape) StartRecording() { t.recording = true }

// StopRecording turns off operation logging.
func (t *GradientTape) StopRecording() { t.recording = false }

// IsRecording reports whether operations are currently logged.
func (t *GradientTape) IsRecording() bool { return t.recording }

// Record appends op to the log. A non-recording tape drops it.
func (t *GradientTape) Record(op ops.Operation) {
	if t.recording {
		t.log = append(t.log, op)
	}
}

// MarkConstant excludes tensors from gradient accumulation. Convolution
// kernels marked constant additionally skip their kernel-gradient
// computation, which is where a frozen network saves most of its
// backward-pass cost.
func (t *GradientTape) MarkConstant(tensors ...*tensor.RawTensor) {
	for _, raw := range tensors {
		t.frozen[raw] = struct{}{}
	}
}

// IsConstant reports whether raw was marked constant.
func (t *GradientTape) IsConstant(raw *tensor.RawTensor) bool {
	_, ok := t.frozen[raw]
	return ok
}

// Clear drops the logged operations, keeping the recording state and
// the constant set.
func (t *GradientTape) Clear() {
	t.log = t.log[:0]
}

// NumOps returns the number of logged operations.
func (t *GradientTape) NumOps() int { return len(t.log) }

// Backward seeds output with outputGrad, walks the log in reverse, asks
// each operation for its input gradients and sums them per tensor.
//
// Operations whose output never received a gradient sit on branches
// that do not reach the seed and are skipped, as are tensors marked
// constant. The result maps every reached tensor to its accumulated
// gradient.
func (t *GradientTape) Backward(output, outputGrad *tensor.RawTensor, backend tensor.Backend) map[*tensor.RawTensor]*tensor.RawTensor {
	grads := make(map[*tensor.RawTensor]*tensor.RawTensor)
	if len(t.log) == 0 {
		return grads
	}

	if !outputGrad.Shape().Equal(output.Shape()) {
		panic(fmt.Sprintf("backward: output gradient shape %v does not match output shape %v",
			outputGrad.Shape(), output.Shape()))
	}

	// The chain rule below runs through the same backend; recording it
	// would grow the tape while walking it.
	wasRecording := t.recording
	t.recording = false
	defer func() { t.recording = wasRecording }()

	grads[output] = outputGrad
	for i := len(t.log) - 1; i >= 0; i-- {
		op := t.log[i]
		upstream, ok := grads[op.Output()]
		if !ok {
			continue
		}

		inputs := op.Inputs()
		for j, g := range op.Backward(upstream, backend) {
			if g == nil || j >= len(inputs) {
				continue
			}
			in := inputs[j]
			if t.IsConstant(in) {
				continue
			}
			if prev, ok := grads[in]; ok {
				grads[in] = backend.Add(prev, g)
			} else {
				grads[in] = g
			}
		}
	}
	return grads
}
