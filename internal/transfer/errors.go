package transfer

import (
	"errors"

	"github.com/elvinmirzazada/StyleTransfer-NerualNet/internal/features"
)

// The failure classes of a run. All are terminal: nothing is retried, the
// run aborts with the triggering condition wrapped, and errors.Is picks out
// the class.
var (
	// ErrConfiguration marks an invalid run setup: bad config values,
	// malformed layer selections, weight tables naming unknown layers.
	// This is the features package's sentinel re-exported, so a selection
	// rejected inside the extractor and a weight table rejected here match
	// the same errors.Is target.
	ErrConfiguration = features.ErrConfiguration

	// ErrShapeMismatch marks tensors that cannot be compared: a non-4-D or
	// multi-image activation reaching Gram, or content/style/target
	// tensors disagreeing on shape.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrNonFinite marks a loss that left the finite range, typically a
	// diverging run (learning rate or style weight too large).
	ErrNonFinite = errors.New("non-finite loss")
)
