package tensor

import (
	"fmt"
	"sync/atomic"
	"unsafe"
)

// Device identifies where tensor math runs. A pipeline picks one device
// up front and stays on it; tensors never migrate mid-run.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
)

// String returns a human-readable device name.
func (d Device) String() string {
	if d == CPU {
		return "CPU"
	}
	return "Unknown"
}

// RawTensor is the untyped storage layer under Tensor. Shape, dtype and
// device are fixed at creation; operations that change shape return a
// new RawTensor. Storage is a reference-counted buffer, so Clone is a
// refcount bump rather than a copy.
type RawTensor struct {
	buf    *refBuffer
	shape  Shape
	dtype  DataType
	device Device
}

// NewRaw allocates a zeroed tensor with the given shape and dtype.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	return &RawTensor{
		buf:    newRefBuffer(shape.NumElements() * dtype.Size()),
		shape:  shape.Clone(),
		dtype:  dtype,
		device: device,
	}, nil
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape { return r.shape }

// Strides returns row-major strides for the tensor's shape.
func (r *RawTensor) Strides() []int { return r.shape.ComputeStrides() }

// DType returns the element type.
func (r *RawTensor) DType() DataType { return r.dtype }

// Device returns the device the tensor lives on.
func (r *RawTensor) Device() Device { return r.device }

// NumElements returns the element count.
func (r *RawTensor) NumElements() int { return r.shape.NumElements() }

// ByteSize returns the storage size in bytes.
func (r *RawTensor) ByteSize() int { return r.NumElements() * r.dtype.Size() }

// Data exposes the backing bytes. Writes through this slice are visible
// to every clone sharing the buffer.
func (r *RawTensor) Data() []byte { return r.buf.bytes }

// AsFloat32 reinterprets the storage as []float32.
// Panics if the dtype is not Float32.
func (r *RawTensor) AsFloat32() []float32 {
	if r.dtype != Float32 {
		panic(fmt.Sprintf("tensor dtype is %s, not float32", r.dtype))
	}
	//nolint:gosec // in-place reinterpretation; the length comes from the validated shape
	return unsafe.Slice((*float32)(unsafe.Pointer(&r.buf.bytes[0])), r.NumElements())
}

// AsFloat64 reinterprets the storage as []float64.
// Panics if the dtype is not Float64.
func (r *RawTensor) AsFloat64() []float64 {
	if r.dtype != Float64 {
		panic(fmt.Sprintf("tensor dtype is %s, not float64", r.dtype))
	}
	//nolint:gosec // in-place reinterpretation; the length comes from the validated shape
	return unsafe.Slice((*float64)(unsafe.Pointer(&r.buf.bytes[0])), r.NumElements())
}

// Clone returns a new header over the same storage. The buffer is
// copy-on-write: backends fall back to out-of-place kernels while more
// than one reference is alive.
func (r *RawTensor) Clone() *RawTensor {
	r.buf.retain()
	return &RawTensor{
		buf:    r.buf,
		shape:  r.shape.Clone(),
		dtype:  r.dtype,
		device: r.device,
	}
}

// DeepClone copies the storage into an independent tensor. The styled
// image starts as a deep clone of the content image so the optimizer
// can update it without disturbing the original.
func (r *RawTensor) DeepClone() *RawTensor {
	out, err := NewRaw(r.shape, r.dtype, r.device)
	if err != nil {
		panic(fmt.Sprintf("deep clone: %v", err))
	}
	copy(out.buf.bytes, r.buf.bytes[:r.ByteSize()])
	return out
}

// Release drops this header's reference; the storage is freed once the
// last reference goes.
func (r *RawTensor) Release() {
	r.buf.drop()
}

// IsUnique reports whether this is the only reference to the storage,
// which is what permits in-place kernels.
func (r *RawTensor) IsUnique() bool {
	return r.buf.unique()
}

// ForceNonUnique pins the buffer as shared so no backend mutates it in
// place, and returns the function that unpins it. The autodiff layer
// wraps recorded inputs this way: their forward values must survive
// until the backward pass reads them.
//
//	defer x.ForceNonUnique()()
func (r *RawTensor) ForceNonUnique() func() {
	r.buf.retain()
	return r.buf.drop
}

// refBuffer is the shared byte storage behind RawTensor headers. The
// count starts at one; drop frees the bytes when it reaches zero.
type refBuffer struct {
	bytes []byte
	count atomic.Int32
}

func newRefBuffer(size int) *refBuffer {
	b := &refBuffer{bytes: make([]byte, size)}
	b.count.Store(1)
	return b
}

func (b *refBuffer) retain() { b.count.Add(1) }

func (b *refBuffer) drop() {
	if b.count.Add(-1) == 0 {
		b.bytes = nil
	}
}

func (b *refBuffer) unique() bool { return b.count.Load() == 1 }
