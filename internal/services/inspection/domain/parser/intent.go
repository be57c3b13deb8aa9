package parser

import "github.com/louisbranch/closerlook/internal/services/inspection/domain/tool"

// Intent classifies a player command.
type Intent int

const (
	LookAround Intent = iota
	Inspect
	ZoomIn
	ZoomOut
	UseTool
	Directional
	Focus
	Reset
)

var intentNames = map[Intent]string{
	LookAround:  "look_around",
	Inspect:     "inspect",
	ZoomIn:      "zoom_in",
	ZoomOut:     "zoom_out",
	UseTool:     "use_tool",
	Directional: "directional",
	Focus:       "focus",
	Reset:       "reset",
}

func (i Intent) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return "unknown"
}

// Command is one parsed player instruction.
type Command struct {
	Intent    Intent
	Target    string
	Tool      tool.Type
	Direction string
	Feature   string
	Raw       string
}
