// Package loader reads pretrained VGG-19 weights from safetensors files.
//
// Safetensors layout:
//
//	[8 bytes: header size (uint64 LE)]
//	[header size bytes: JSON header]
//	[tensor data: raw bytes]
//
// The JSON header maps tensor names to {dtype, shape, data_offsets}
// entries, plus an optional "__metadata__" string map. Offsets are
// relative to the start of the data section.
//
// Files are memory-mapped, so opening one costs a header parse and the
// payload is paged in on demand as tensors are copied out. LoadVGG19 is
// the high-level entry point; File gives raw access for anything else.
package loader
