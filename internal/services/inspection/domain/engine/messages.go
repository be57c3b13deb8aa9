package engine

const (
	msgLookAroundHeader   = "inspection.look_around.header"
	msgLookAroundEntry    = "inspection.look_around.entry"
	msgLookAroundEmpty    = "inspection.look_around.empty"
	msgTargetNone         = "inspection.target.none"
	msgTargetNotFound     = "inspection.target.not_found"
	msgToolMissing        = "inspection.tool.missing"
	msgToolUnknown        = "inspection.tool.unknown"
	msgToolNotOwned       = "inspection.tool.not_owned"
	msgToolNeedsLight     = "inspection.tool.needs_light"
	msgToolOutOfRange     = "inspection.tool.out_of_range"
	msgToolTooSmall       = "inspection.tool.too_small"
	msgUseToolNoTarget    = "inspection.use_tool.no_target"
	msgUseToolApplied     = "inspection.use_tool.applied"
	msgZoomInaccessible   = "inspection.zoom.inaccessible"
	msgZoomAtFinest       = "inspection.zoom.at_finest"
	msgZoomAtFarthest     = "inspection.zoom.at_farthest"
	msgDirectionalFound   = "inspection.directional.found"
	msgDirectionalNothing = "inspection.directional.nothing"
	msgFocusNothing       = "inspection.focus.nothing"
	msgResetDone          = "inspection.reset.done"
	msgResetCleared       = "inspection.reset.cleared"
	msgHintRequiredTool   = "inspection.hint.required_tool"
	msgHintAnyTool        = "inspection.hint.any_tool"
	msgHintLight          = "inspection.hint.light"
	msgHintCloser         = "inspection.hint.closer"
	msgHintLarger         = "inspection.hint.larger"
)
