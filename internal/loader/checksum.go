package loader

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// VerifyChecksum computes the SHA-256 digest of the file's data section
// (everything after the header) and compares it against digest, a
// hex-encoded 64-character string. Returns ErrChecksumMismatch if they
// differ.
//
// Safetensors files carry no checksum of their own, so the expected digest
// comes from the caller (typically published alongside the weight file).
func (f *File) VerifyChecksum(digest string) error {
	if f.closed {
		return fmt.Errorf("file is closed")
	}

	want, err := hex.DecodeString(digest)
	if err != nil {
		return fmt.Errorf("invalid digest %q: %w", digest, err)
	}
	if len(want) != sha256.Size {
		return fmt.Errorf("invalid digest %q: got %d bytes, want %d", digest, len(want), sha256.Size)
	}

	sum := sha256.Sum256(f.data[f.dataOffset:])
	if !bytes.Equal(sum[:], want) {
		return fmt.Errorf("%w: computed %x", ErrChecksumMismatch, sum)
	}
	return nil
}
