package assembly

import "errors"

// ErrOffsetExceedsAsset reports a music start offset at or beyond the end of
// the asset, leaving no usable audio.
var ErrOffsetExceedsAsset = errors.New("start offset exceeds asset duration")

// ErrNoGeneratedAssets reports a run in which no marker contributed audio:
// every marker was skipped or the template had none.
var ErrNoGeneratedAssets = errors.New("no markers with generated assets")

// ErrOutputLocked reports an output directory already claimed by another
// assembly process.
var ErrOutputLocked = errors.New("output directory locked by another process")
