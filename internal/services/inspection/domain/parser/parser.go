// Package parser turns free-form inspection commands into intents.
//
// Rules run in a fixed order and the first match wins: tool usage, zoom-out
// (reset phrases first), zoom-in, directional looks, feature focus, then the
// bare-target fallback. Phrases match on word boundaries so that "examine"
// never reads as "in".
package parser

import (
	"regexp"
	"strings"

	"github.com/louisbranch/closerlook/internal/services/inspection/core/naming"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/tool"
)

const inspectVerbs = `(?:look at|look|examine|inspect|check|study|observe|view|peer at|peer|search|x)`

var (
	useOnPattern   = regexp.MustCompile(`^use (.+?) (?:on|to examine|to inspect|to look at) (.+)$`)
	withPattern    = regexp.MustCompile(`^(?:` + inspectVerbs + ` )?(.+?) (?:with|using|through) (.+)$`)
	bareUsePattern = regexp.MustCompile(`^use (.+)$`)

	resetPattern   = regexp.MustCompile(`^(?:reset(?: (?:view|zoom))?|start over|look normally|stop zooming)(?:\s+(?:on|at|with)?\s*(.*))?$`)
	zoomOutPattern = regexp.MustCompile(`\b(?:zoom out|step back|pull back|back away|back off|wider view|less detail)\b(?:\s+(?:from|of|on)?\s*(.*))?$`)

	zoomInLeadPattern = regexp.MustCompile(`^(?:look closer|look more closely|zoom in|get closer|lean in|move closer|go closer)(?:\s+(?:at|on|to|into)?\s*(.*))?$`)
	zoomInTailPattern = regexp.MustCompile(`^(?:take a |have a )?(?:closer look|close look) at (.+)$|^` + inspectVerbs + ` (.+?) (?:closely|more closely|carefully|in detail)$`)

	directionalPattern = regexp.MustCompile(`^` + inspectVerbs + ` (on top of|underneath|beneath|below|under|behind|inside|into|within|in|above|over|around|beside|next to) (.+)$`)

	focusPattern = regexp.MustCompile(`^(?:focus|concentrate|zero in|zoom) on (.+?)(?: (?:of|on) (.+))?$`)

	lookAroundPattern = regexp.MustCompile(`^(?:look(?: around| about)?|l|survey(?: the (?:room|area))?|where am i)$`)
	leadingVerb       = regexp.MustCompile(`^` + inspectVerbs + `\b\s*`)
	spaces            = regexp.MustCompile(`\s+`)
)

var directions = map[string]string{
	"under":      "under",
	"underneath": "under",
	"beneath":    "under",
	"below":      "under",
	"behind":     "behind",
	"inside":     "inside",
	"into":       "inside",
	"within":     "inside",
	"in":         "inside",
	"above":      "above",
	"over":       "above",
	"on top of":  "above",
	"around":     "around",
	"beside":     "beside",
	"next to":    "beside",
}

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "at": true, "on": true, "to": true,
	"my": true, "this": true, "that": true, "of": true, "with": true,
	"in": true, "into": true, "some": true, "please": true, "it": true,
}

// Parser classifies commands against a tool catalog.
type Parser struct {
	catalog *tool.Catalog
}

// New returns a parser that resolves tool phrases through catalog. A nil
// catalog uses the built-in one.
func New(catalog *tool.Catalog) *Parser {
	if catalog == nil {
		catalog = tool.DefaultCatalog()
	}
	return &Parser{catalog: catalog}
}

// Parse classifies one line of input.
func (p *Parser) Parse(input string) Command {
	raw := input
	text := spaces.ReplaceAllString(strings.ToLower(strings.TrimSpace(input)), " ")
	text = strings.TrimRight(text, ".!?")
	cmd := Command{Intent: LookAround, Raw: raw}
	if text == "" {
		return cmd
	}

	if m := useOnPattern.FindStringSubmatch(text); m != nil {
		cmd.Intent = UseTool
		cmd.Tool = p.toolType(m[1])
		cmd.Target = clean(m[2])
		return cmd
	}
	if m := withPattern.FindStringSubmatch(text); m != nil {
		if t, ok := p.catalog.Resolve(clean(m[2])); ok {
			cmd.Intent = UseTool
			cmd.Tool = t
			cmd.Target = clean(m[1])
			return cmd
		}
	}
	if m := bareUsePattern.FindStringSubmatch(text); m != nil {
		cmd.Intent = UseTool
		cmd.Tool = p.toolType(m[1])
		return cmd
	}

	if m := resetPattern.FindStringSubmatch(text); m != nil {
		cmd.Intent = Reset
		cmd.Target = clean(m[1])
		return cmd
	}
	if m := zoomOutPattern.FindStringSubmatch(text); m != nil {
		cmd.Intent = ZoomOut
		cmd.Target = clean(m[1])
		return cmd
	}

	if m := zoomInLeadPattern.FindStringSubmatch(text); m != nil {
		cmd.Intent = ZoomIn
		cmd.Target = clean(m[1])
		return cmd
	}
	if m := zoomInTailPattern.FindStringSubmatch(text); m != nil {
		cmd.Intent = ZoomIn
		cmd.Target = clean(m[1] + m[2])
		return cmd
	}

	if m := directionalPattern.FindStringSubmatch(text); m != nil {
		cmd.Intent = Directional
		cmd.Direction = directions[m[1]]
		cmd.Target = clean(m[2])
		return cmd
	}

	if m := focusPattern.FindStringSubmatch(text); m != nil {
		cmd.Intent = Focus
		cmd.Feature = clean(m[1])
		cmd.Target = clean(m[2])
		return cmd
	}

	if lookAroundPattern.MatchString(text) {
		return cmd
	}
	if target := clean(leadingVerb.ReplaceAllString(text, "")); target != "" {
		cmd.Intent = Inspect
		cmd.Target = target
	}
	return cmd
}

// toolType resolves a tool phrase through the catalog, falling back to its
// normalized identifier so the engine can report an unknown tool by name.
func (p *Parser) toolType(phrase string) tool.Type {
	cleaned := clean(phrase)
	if t, ok := p.catalog.Resolve(cleaned); ok {
		return t
	}
	return tool.Type(naming.NormalizeIdentifier(cleaned))
}

// clean trims leading and trailing stop words.
func clean(s string) string {
	words := strings.Fields(s)
	for len(words) > 0 && stopWords[words[0]] {
		words = words[1:]
	}
	for len(words) > 0 && stopWords[words[len(words)-1]] {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}
