// Package assembly is the engine that turns a marker template into audio:
// it assigns markers to a fixed bus plan, mixes one summation buffer per
// bus, applies the music offset/fade transform, and emits stem files, an
// interleaved multi-channel composite, and an assembly metadata record.
//
// The engine reads templates and assets read-only and writes only into the
// output directory. Per-marker asset problems degrade gracefully (the
// marker is skipped with a warning); model and emit problems abort the run.
package assembly
