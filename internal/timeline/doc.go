// Package timeline defines the marker template data model the assembly
// engine consumes: timed markers with type-specific prompt payloads,
// append-only generation version history, and the template container that
// fixes the overall duration.
//
// The package owns JSON persistence for templates, including migrations for
// the two legacy shapes still found in exported files (string prompts and
// pre-version single asset_file markers). The engine itself never mutates
// markers; mutation helpers here exist for the editor-side collaborators.
package timeline
