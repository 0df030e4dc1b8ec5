// Package tensor provides raw and typed dense tensors plus the Backend
// interface that compute implementations plug into.
package tensor

// DType constrains the element types a tensor can hold. Images, network
// weights and gradients run float32; float64 exists for numeric
// verification work such as finite-difference gradient checks.
type DType interface {
	~float32 | ~float64
}

// DataType is the runtime tag matching DType.
type DataType int

// Tensor element types.
const (
	Float32 DataType = iota
	Float64
)

// Size returns the element width in bytes.
func (dt DataType) Size() int {
	switch dt {
	case Float32:
		return 4
	case Float64:
		return 8
	default:
		panic("unknown data type")
	}
}

func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// typeTag maps a concrete element type to its runtime tag.
func typeTag[T DType](v T) DataType {
	switch any(v).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	default:
		panic("unsupported type")
	}
}
