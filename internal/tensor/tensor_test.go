package tensor

import (
	"math"
	"testing"
)

// wantShape fails the test when got differs from want.
func wantShape(t *testing.T, got, want Shape) {
	t.Helper()
	if !got.Equal(want) {
		t.Fatalf("shape = %v, want %v", got, want)
	}
}

// wantData checks a float32 tensor's flat contents.
func wantData(t *testing.T, tr *Tensor[float32, *MockBackend], want []float32) {
	t.Helper()
	got := tr.Data()
	if len(got) != len(want) {
		t.Fatalf("have %d elements, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-6 {
			t.Fatalf("element %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDataTypeSizeAndName(t *testing.T) {
	if Float32.Size() != 4 || Float64.Size() != 8 {
		t.Errorf("sizes = %d and %d, want 4 and 8", Float32.Size(), Float64.Size())
	}
	if Float32.String() != "float32" || Float64.String() != "float64" {
		t.Errorf("names = %q and %q", Float32, Float64)
	}
}

func TestTypeTag(t *testing.T) {
	if dt := typeTag(float32(0)); dt != Float32 {
		t.Errorf("typeTag(float32) = %v, want Float32", dt)
	}
	if dt := typeTag(float64(0)); dt != Float64 {
		t.Errorf("typeTag(float64) = %v, want Float64", dt)
	}
}

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{}, 1}, // scalars hold one element
		{Shape{5}, 5},
		{Shape{3, 4}, 12},
		{Shape{2, 3, 4}, 24},
		{Shape{1, 1, 1}, 1},
	}
	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("%v: NumElements = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestShapeValidate(t *testing.T) {
	for _, s := range []Shape{{1}, {3, 4}, {2, 3, 4}} {
		if err := s.Validate(); err != nil {
			t.Errorf("%v rejected: %v", s, err)
		}
	}
	for _, s := range []Shape{{0}, {3, 0}, {-1}, {3, -4}} {
		if err := s.Validate(); err == nil {
			t.Errorf("%v accepted, want error", s)
		}
	}
}

func TestShapeEqual(t *testing.T) {
	tests := []struct {
		a, b Shape
		want bool
	}{
		{Shape{3, 4}, Shape{3, 4}, true},
		{Shape{3, 4}, Shape{4, 3}, false},
		{Shape{3}, Shape{3, 1}, false},
		{Shape{}, Shape{}, true},
	}
	for _, tt := range tests {
		if got := tt.a.Equal(tt.b); got != tt.want {
			t.Errorf("%v.Equal(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestShapeComputeStrides(t *testing.T) {
	tests := []struct {
		shape Shape
		want  []int
	}{
		{Shape{4}, []int{1}},
		{Shape{3, 4}, []int{4, 1}},
		{Shape{2, 3, 4}, []int{12, 4, 1}},
	}
	for _, tt := range tests {
		got := tt.shape.ComputeStrides()
		if len(got) != len(tt.want) {
			t.Fatalf("%v: strides = %v, want %v", tt.shape, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%v: strides = %v, want %v", tt.shape, got, tt.want)
				break
			}
		}
	}
}

func TestBroadcastShapes(t *testing.T) {
	compatible := []struct {
		a, b, want Shape
	}{
		{Shape{3, 1}, Shape{3, 5}, Shape{3, 5}},
		{Shape{1, 5}, Shape{3, 5}, Shape{3, 5}},
		{Shape{3, 4}, Shape{3, 4}, Shape{3, 4}},
		{Shape{1}, Shape{3, 4}, Shape{3, 4}},
		{Shape{3, 4}, Shape{1}, Shape{3, 4}},
	}
	for _, tt := range compatible {
		got, _, err := BroadcastShapes(tt.a, tt.b)
		if err != nil {
			t.Errorf("BroadcastShapes(%v, %v): %v", tt.a, tt.b, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("BroadcastShapes(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}

	incompatible := [][2]Shape{
		{Shape{3, 4}, Shape{3, 5}},
		{Shape{2, 3}, Shape{3, 3}},
	}
	for _, pair := range incompatible {
		if _, _, err := BroadcastShapes(pair[0], pair[1]); err == nil {
			t.Errorf("BroadcastShapes(%v, %v) accepted, want error", pair[0], pair[1])
		}
	}
}

func TestNewRawAllocates(t *testing.T) {
	raw, err := NewRaw(Shape{3, 4}, Float32, CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}

	wantShape(t, raw.Shape(), Shape{3, 4})
	if raw.DType() != Float32 {
		t.Errorf("dtype = %v, want Float32", raw.DType())
	}
	if raw.Device() != CPU {
		t.Errorf("device = %v, want CPU", raw.Device())
	}
	if raw.NumElements() != 12 || raw.ByteSize() != 48 {
		t.Errorf("%d elements in %d bytes, want 12 in 48",
			raw.NumElements(), raw.ByteSize())
	}
}

func TestRawTensorCloneSharesBuffer(t *testing.T) {
	raw, err := NewRaw(Shape{2, 2}, Float32, CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	raw.AsFloat32()[0] = 1

	// Clones are reference-counted views, not copies.
	clone := raw.Clone()
	if clone.AsFloat32()[0] != 1 {
		t.Fatal("clone does not see the original's data")
	}

	clone.AsFloat32()[0] = 999
	if raw.AsFloat32()[0] != 999 {
		t.Error("write through the clone is invisible to the original")
	}
	if raw.IsUnique() {
		t.Error("original still claims sole ownership of the buffer")
	}
}

func TestConstantFills(t *testing.T) {
	backend := NewMockBackend()

	tests := []struct {
		name  string
		build func() *Tensor[float32, *MockBackend]
		want  float32
	}{
		{"zeros", func() *Tensor[float32, *MockBackend] {
			return Zeros[float32](Shape{3, 4}, backend)
		}, 0},
		{"ones", func() *Tensor[float32, *MockBackend] {
			return Ones[float32](Shape{2, 3}, backend)
		}, 1},
		{"full", func() *Tensor[float32, *MockBackend] {
			return Full(Shape{2, 2}, float32(3.14), backend)
		}, 3.14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i, v := range tt.build().Data() {
				if v != tt.want {
					t.Fatalf("element %d = %v, want %v", i, v, tt.want)
				}
			}
		})
	}
}

func TestEye(t *testing.T) {
	backend := NewMockBackend()
	eye := Eye[float32](3, backend)

	wantShape(t, eye.Shape(), Shape{3, 3})
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			want := float32(0)
			if r == c {
				want = 1
			}
			if got := eye.At(r, c); got != want {
				t.Errorf("eye[%d,%d] = %v, want %v", r, c, got, want)
			}
		}
	}
}

func TestFromSliceRoundTrip(t *testing.T) {
	backend := NewMockBackend()
	data := []float32{1, 2, 3, 4, 5, 6}

	tr, err := FromSlice(data, Shape{2, 3}, backend)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}

	wantShape(t, tr.Shape(), Shape{2, 3})
	wantData(t, tr, data)

	// At addresses the same values in row-major order.
	for r := 0; r < 2; r++ {
		for c := 0; c < 3; c++ {
			if got, want := tr.At(r, c), data[r*3+c]; got != want {
				t.Errorf("At(%d,%d) = %v, want %v", r, c, got, want)
			}
		}
	}
}

func TestSetWritesElement(t *testing.T) {
	backend := NewMockBackend()
	tr := Zeros[float32](Shape{2, 2}, backend)

	tr.Set(3.14, 1, 1)

	if got := tr.At(1, 1); got != 3.14 {
		t.Errorf("At(1,1) = %v, want 3.14", got)
	}
}

func TestItem(t *testing.T) {
	backend := NewMockBackend()

	if got := Full(Shape{1}, float32(42), backend).Item(); got != 42 {
		t.Errorf("Item = %v, want 42", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("Item on a four-element tensor did not panic")
		}
	}()
	Ones[float32](Shape{2, 2}, backend).Item()
}

func TestElementwiseArithmetic(t *testing.T) {
	backend := NewMockBackend()

	a, err := FromSlice([]float32{1, 2, 3, 4}, Shape{2, 2}, backend)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	b, err := FromSlice([]float32{5, 6, 7, 8}, Shape{2, 2}, backend)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}

	wantData(t, a.Add(b), []float32{6, 8, 10, 12})
	wantData(t, b.Sub(a), []float32{4, 4, 4, 4})
	wantData(t, a.Mul(b), []float32{5, 12, 21, 32})
}

func TestMatMul(t *testing.T) {
	backend := NewMockBackend()

	a, err := FromSlice([]float32{1, 2, 3, 4}, Shape{2, 2}, backend)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	b, err := FromSlice([]float32{5, 6, 7, 8}, Shape{2, 2}, backend)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}

	wantData(t, a.MatMul(b), []float32{19, 22, 43, 50})
}

func TestReshapeKeepsData(t *testing.T) {
	backend := NewMockBackend()
	data := make([]float32, 12)
	for i := range data {
		data[i] = float32(i)
	}
	tr, err := FromSlice(data, Shape{12}, backend)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}

	grid := tr.Reshape(3, 4)

	wantShape(t, grid.Shape(), Shape{3, 4})
	if grid.At(0, 0) != 0 || grid.At(2, 3) != 11 {
		t.Error("reshape shuffled the data")
	}
}

func TestTransposeSwapsAxes(t *testing.T) {
	backend := NewMockBackend()
	tr, err := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, backend)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}

	got := tr.T()

	wantShape(t, got.Shape(), Shape{3, 2})
	wantData(t, got, []float32{1, 4, 2, 5, 3, 6})
}

func TestCloneSharesAndDeepCloneCopies(t *testing.T) {
	backend := NewMockBackend()

	tr, err := FromSlice([]float32{1, 2, 3, 4}, Shape{2, 2}, backend)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}

	shallow := tr.Clone()
	shallow.Set(999, 0, 0)
	if tr.At(0, 0) != 999 {
		t.Error("Clone made a private buffer; writes should be shared")
	}

	tr.Set(1, 0, 0)
	deep := tr.DeepClone()
	deep.Set(999, 0, 0)
	if tr.At(0, 0) != 1 {
		t.Error("DeepClone shared the buffer; writes should be private")
	}
}

func TestAddBroadcastsColumns(t *testing.T) {
	backend := NewMockBackend()

	a := Ones[float32](Shape{3, 1}, backend)
	b := Full(Shape{3, 5}, float32(2), backend)

	c := a.Add(b)

	wantShape(t, c.Shape(), Shape{3, 5})
	for i, v := range c.Data() {
		if v != 3 {
			t.Fatalf("element %d = %v, want 3", i, v)
		}
	}
}
