package loader

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
)

// maxHeaderSize bounds the JSON header so a malformed length field cannot
// drive a huge allocation.
const maxHeaderSize = 100 * 1024 * 1024

// elemSizes maps safetensors dtype tags to element widths in bytes.
var elemSizes = map[string]int64{
	"F64":  8,
	"F32":  4,
	"F16":  2,
	"BF16": 2,
	"I64":  8,
	"I32":  4,
	"I16":  2,
	"I8":   1,
	"U8":   1,
	"BOOL": 1,
}

// TensorInfo describes one tensor entry in the header.
type TensorInfo struct {
	DType       string   `json:"dtype"`
	Shape       []int    `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"` // [start, end), relative to the data section
}

// header is the parsed JSON header. The tensor entries and the
// "__metadata__" map share one JSON object, so unmarshaling is two-phase.
type header struct {
	Metadata map[string]string
	Tensors  map[string]TensorInfo
}

func (h *header) UnmarshalJSON(data []byte) error {
	var rawMap map[string]json.RawMessage
	if err := json.Unmarshal(data, &rawMap); err != nil {
		return err
	}

	if metadataRaw, ok := rawMap["__metadata__"]; ok {
		if err := json.Unmarshal(metadataRaw, &h.Metadata); err != nil {
			return fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	h.Tensors = make(map[string]TensorInfo, len(rawMap))
	for key, value := range rawMap {
		if key == "__metadata__" {
			continue
		}
		var info TensorInfo
		if err := json.Unmarshal(value, &info); err != nil {
			return fmt.Errorf("failed to unmarshal tensor %s: %w", key, err)
		}
		h.Tensors[key] = info
	}

	return nil
}

// File is a read-only, memory-mapped safetensors file.
//
// Always call Close when done to unmap the file (use defer). Slices
// returned by Data point into the mapping and are only valid while the
// file is open.
type File struct {
	file       *os.File
	data       []byte // mmap'd region (read-only)
	size       int64
	header     header
	dataOffset int64
	closed     bool
}

// Open memory-maps a safetensors file and parses its header. Every tensor
// entry is validated (known dtype, offsets in bounds and non-overlapping,
// byte count matching the shape) before Open returns.
func Open(path string) (*File, error) {
	//nolint:gosec // G304: file path comes from user input, which is expected for weight loading
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if stat.Size() < 8 {
		_ = file.Close()
		return nil, fmt.Errorf("file too small: %d bytes (minimum 8 bytes required)", stat.Size())
	}

	data, err := mmapFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("mmap failed: %w", err)
	}

	f := &File{
		file: file,
		data: data,
		size: stat.Size(),
	}

	if err := f.parseHeader(); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}

	return f, nil
}

func (f *File) parseHeader() error {
	headerSize := binary.LittleEndian.Uint64(f.data[0:8])
	if headerSize > maxHeaderSize {
		return ErrHeaderTooLarge
	}

	headerEnd := 8 + int64(headerSize) //nolint:gosec // G115: bounded by maxHeaderSize above
	if headerEnd > f.size {
		return fmt.Errorf("header extends beyond file: header_end=%d, file_size=%d", headerEnd, f.size)
	}

	if err := json.Unmarshal(f.data[8:headerEnd], &f.header); err != nil {
		return fmt.Errorf("failed to parse header JSON: %w", err)
	}
	f.dataOffset = headerEnd

	return f.validateEntries()
}

// validateEntries checks every header entry against the data section, so
// later accesses can trust the offsets. Malformed files must fail here,
// not as an out-of-range slice on first read.
func (f *File) validateEntries() error {
	dataSize := f.size - f.dataOffset

	names := make([]string, 0, len(f.header.Tensors))
	for name := range f.header.Tensors {
		names = append(names, name)
	}
	// Sort by start offset for overlap detection.
	sort.Slice(names, func(i, j int) bool {
		return f.header.Tensors[names[i]].DataOffsets[0] < f.header.Tensors[names[j]].DataOffsets[0]
	})

	for i, name := range names {
		info := f.header.Tensors[name]
		elem, ok := elemSizes[info.DType]
		if !ok {
			return fmt.Errorf("tensor %q: unsupported dtype %q", name, info.DType)
		}

		start, end := info.DataOffsets[0], info.DataOffsets[1]
		if start < 0 || end < start {
			return fmt.Errorf("tensor %q: invalid data offsets [%d, %d]", name, start, end)
		}
		if end > dataSize {
			return fmt.Errorf("%w: tensor %q: end %d > data_size %d", ErrOutOfBounds, name, end, dataSize)
		}

		count := int64(1)
		for _, dim := range info.Shape {
			if dim < 0 {
				return fmt.Errorf("tensor %q: negative dimension in shape %v", name, info.Shape)
			}
			count *= int64(dim)
		}
		if end-start != count*elem {
			return fmt.Errorf("tensor %q: %d data bytes for shape %v of %s (want %d)",
				name, end-start, info.Shape, info.DType, count*elem)
		}

		if i < len(names)-1 {
			next := f.header.Tensors[names[i+1]]
			if end > next.DataOffsets[0] {
				return fmt.Errorf("tensors %q and %q overlap: [%d, %d) and [%d, %d)",
					name, names[i+1], start, end, next.DataOffsets[0], next.DataOffsets[1])
			}
		}
	}

	return nil
}

// Close unmaps and closes the file.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true

	var err error
	if f.data != nil {
		err = munmapFile(f.data)
		f.data = nil
	}

	if closeErr := f.file.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	return err
}

// Metadata returns the "__metadata__" map from the header, or nil if the
// file has none.
func (f *File) Metadata() map[string]string {
	return f.header.Metadata
}

// TensorNames returns all tensor names in the file, sorted.
func (f *File) TensorNames() []string {
	names := make([]string, 0, len(f.header.Tensors))
	for name := range f.header.Tensors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Info returns the header entry for a tensor.
func (f *File) Info(name string) (TensorInfo, error) {
	info, ok := f.header.Tensors[name]
	if !ok {
		return TensorInfo{}, fmt.Errorf("%w: %q", ErrTensorNotFound, name)
	}
	return info, nil
}

// Data returns a zero-copy slice of a tensor's raw bytes. The slice points
// into the mapped region: it is read-only and valid only while the file is
// open.
func (f *File) Data(name string) ([]byte, error) {
	if f.closed {
		return nil, fmt.Errorf("file is closed")
	}

	info, err := f.Info(name)
	if err != nil {
		return nil, err
	}

	start := f.dataOffset + info.DataOffsets[0]
	end := f.dataOffset + info.DataOffsets[1]
	return f.data[start:end], nil
}

// Float32s decodes a tensor's payload into a freshly allocated []float32.
// Only F32 tensors are supported; half-precision files need a conversion
// step this package does not do.
func (f *File) Float32s(name string) ([]float32, error) {
	info, err := f.Info(name)
	if err != nil {
		return nil, err
	}
	if info.DType != "F32" {
		return nil, fmt.Errorf("tensor %q: dtype %s requires conversion (only F32 is supported)", name, info.DType)
	}

	data, err := f.Data(name)
	if err != nil {
		return nil, err
	}

	out := make([]float32, len(data)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return out, nil
}
