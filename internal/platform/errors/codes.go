// Package errors provides structured domain errors for misuse that must fail
// fast: bad scene data, unknown tool types, corrupt saves.
//
// Expected in-game failures (missing target, inaccessible zoom level) are not
// errors; the engine reports them as unsuccessful results.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Object registration errors
	CodeObjectInvalid   Code = "OBJECT_INVALID"
	CodeObjectDuplicate Code = "OBJECT_DUPLICATE"

	// Tool errors
	CodeToolUnknown Code = "TOOL_UNKNOWN"
	CodeToolInvalid Code = "TOOL_INVALID"

	// Enum decoding errors
	CodeZoomLevelInvalid  Code = "ZOOM_LEVEL_INVALID"
	CodeAffordanceInvalid Code = "AFFORDANCE_INVALID"
	CodeDiscoveryInvalid  Code = "DISCOVERY_INVALID"

	// Constraint errors
	CodeConstraintsInvalid Code = "CONSTRAINTS_INVALID"

	// Persistence and data-file errors
	CodeSnapshotInvalid Code = "SNAPSHOT_INVALID"
	CodeSceneInvalid    Code = "SCENE_INVALID"
	CodeLibraryInvalid  Code = "LIBRARY_INVALID"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)
