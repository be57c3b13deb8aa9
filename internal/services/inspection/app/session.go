// Package app runs an interactive inspection session: it reads player lines,
// sends game commands to the engine, handles ":"-prefixed session commands
// and prints the in-character transcript.
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/text/message"

	"github.com/louisbranch/closerlook/internal/platform/i18n/catalog"
	"github.com/louisbranch/closerlook/internal/platform/otel"
	"github.com/louisbranch/closerlook/internal/services/inspection/core/naming"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/engine"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/parser"
	"github.com/louisbranch/closerlook/internal/services/inspection/domain/tool"
	"github.com/louisbranch/closerlook/internal/services/inspection/i18n"
	"github.com/louisbranch/closerlook/internal/services/inspection/storage"
)

const tracerName = "github.com/louisbranch/closerlook/internal/services/inspection/app"

// commandDuration is the game time one player command takes.
const commandDuration = 10.0

const prompt = "> "

// Options wires a Session. Engine and Out are required.
type Options struct {
	Engine *engine.Engine
	// Store persists save slots; nil disables the save commands.
	Store        storage.SaveStore
	Messages     *catalog.Bundle
	Locale       string
	Logger       *zap.Logger
	Out          io.Writer
	RecentWindow float64
}

// Session is one player's interactive run. Not safe for concurrent use.
type Session struct {
	engine  *engine.Engine
	parser  *parser.Parser
	store   storage.SaveStore
	printer *message.Printer
	log     *zap.Logger
	tracer  *otel.Tracer
	out     io.Writer
	recent  float64
}

// NewSession builds a session around an already populated engine.
func NewSession(opts Options) (*Session, error) {
	if opts.Engine == nil {
		return nil, errors.New("engine is required")
	}
	if opts.Out == nil {
		return nil, errors.New("output writer is required")
	}
	bundle := opts.Messages
	if bundle == nil {
		var err error
		if bundle, err = i18n.Load(); err != nil {
			return nil, fmt.Errorf("load messages: %w", err)
		}
	}
	printer, err := bundle.Printer(opts.Locale)
	if err != nil {
		return nil, fmt.Errorf("message printer: %w", err)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	recent := opts.RecentWindow
	if recent <= 0 {
		recent = 300
	}
	locale := strings.TrimSpace(opts.Locale)
	if locale == "" {
		locale = catalog.BaseLocale
	}
	return &Session{
		engine:  opts.Engine,
		parser:  parser.New(opts.Engine.Tools()),
		store:   opts.Store,
		printer: printer,
		log:     log,
		tracer: otel.NewTracer(tracerName,
			attribute.String("inspect.locale", locale),
			attribute.String("inspect.location", opts.Engine.Location()),
		),
		out:    opts.Out,
		recent: recent,
	}, nil
}

// Run reads lines from in until EOF, :quit or ctx is done.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	s.say("app.welcome", strconv.FormatInt(s.engine.Seed(), 10))
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(s.out, prompt)
		if !scanner.Scan() {
			break
		}
		if quit := s.Handle(ctx, scanner.Text()); quit {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	fmt.Fprintln(s.out)
	s.say("app.bye")
	return nil
}

// Handle processes one input line and reports whether the session ended.
func (s *Session) Handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if strings.HasPrefix(line, ":") {
		return s.handleMeta(ctx, line)
	}
	s.play(ctx, line)
	return false
}

func (s *Session) play(ctx context.Context, line string) {
	_, span := s.tracer.Start(ctx, "inspect.command", attribute.Int64("inspect.seed", s.engine.Seed()))
	defer otel.End(span, nil)

	s.engine.AdvanceTime(commandDuration)
	cmd := s.parser.Parse(line)
	s.log.Debug("player command",
		zap.String("intent", cmd.Intent.String()),
		zap.String("target", cmd.Target))

	res := s.engine.Execute(cmd)
	span.SetAttributes(
		attribute.String("inspect.intent", cmd.Intent.String()),
		attribute.String("inspect.target", res.Target),
		attribute.Bool("inspect.success", res.Success),
		attribute.Int("inspect.zoom_level", int(res.ZoomLevel)),
		attribute.Int("inspect.discoveries", len(res.Discovered)),
	)
	if !res.Success {
		span.SetAttributes(attribute.String("inspect.reason", string(res.Error)))
	}
	s.render(res)
}

func (s *Session) render(res engine.Result) {
	if res.ASCIIArt != "" {
		fmt.Fprintln(s.out, strings.TrimRight(res.ASCIIArt, "\n"))
	}
	if res.Description != "" {
		fmt.Fprintln(s.out, res.Description)
	}
	if res.Success && res.Target != "" && res.ZoomLevel.Valid() {
		s.say("app.level", res.ZoomLevel.String())
	}
	if len(res.Discovered) > 0 {
		names := make([]string, 0, len(res.Discovered))
		for _, d := range res.Discovered {
			names = append(names, naming.Humanize(d.ID))
		}
		s.say("app.discovered", strings.Join(names, ", "))
	}
	if res.Hint != "" {
		s.say("app.hint", res.Hint)
	}
}

func (s *Session) handleMeta(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	name := strings.ToLower(fields[0])
	args := fields[1:]

	ctx, span := s.tracer.Start(ctx, "inspect.session_command",
		attribute.String("inspect.session_command", name))
	var err error
	defer func() { otel.End(span, err) }()

	switch name {
	case ":quit", ":q", ":exit":
		s.say("app.bye")
		return true
	case ":help", ":h":
		s.say("app.help")
	case ":save":
		err = s.save(ctx, args)
	case ":load":
		err = s.load(ctx, args)
	case ":delete":
		err = s.delete(ctx, args)
	case ":slots":
		err = s.slots(ctx)
	case ":light":
		s.light(args)
	case ":give":
		err = s.give(args)
	case ":facts":
		s.facts()
	case ":stats":
		s.stats()
	case ":seed":
		s.seed(args)
	default:
		s.say("app.unknown", name)
	}
	if err != nil {
		s.log.Warn("session command failed", zap.String("command", name), zap.Error(err))
		s.say("app.error", err.Error())
	}
	return false
}

func (s *Session) requireStore() bool {
	if s.store == nil {
		s.say("app.saves_disabled")
		return false
	}
	return true
}

func (s *Session) save(ctx context.Context, args []string) error {
	if len(args) != 1 {
		s.say("app.usage", ":save NAME")
		return nil
	}
	if !s.requireStore() {
		return nil
	}
	payload, err := engine.MarshalSnapshot(s.engine.Snapshot())
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, storage.SaveSlot{Slot: args[0], Payload: payload}); err != nil {
		return err
	}
	s.log.Info("session saved", zap.String("slot", args[0]), zap.Int("bytes", len(payload)))
	s.say("app.saved", args[0])
	return nil
}

func (s *Session) load(ctx context.Context, args []string) error {
	if len(args) != 1 {
		s.say("app.usage", ":load NAME")
		return nil
	}
	if !s.requireStore() {
		return nil
	}
	slot, err := s.store.Load(ctx, args[0])
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no slot named %s", args[0])
		}
		return err
	}
	snap, err := engine.UnmarshalSnapshot(slot.Payload)
	if err != nil {
		return err
	}
	if err := s.engine.Restore(snap); err != nil {
		return err
	}
	s.log.Info("session loaded", zap.String("slot", args[0]))
	s.say("app.loaded", args[0])
	return nil
}

func (s *Session) delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		s.say("app.usage", ":delete NAME")
		return nil
	}
	if !s.requireStore() {
		return nil
	}
	if err := s.store.Delete(ctx, args[0]); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no slot named %s", args[0])
		}
		return err
	}
	s.say("app.deleted", args[0])
	return nil
}

func (s *Session) slots(ctx context.Context) error {
	if !s.requireStore() {
		return nil
	}
	slots, err := s.store.List(ctx)
	if err != nil {
		return err
	}
	if len(slots) == 0 {
		s.say("app.slots.none")
		return nil
	}
	for _, slot := range slots {
		s.say("app.slots.entry", slot.Slot, slot.UpdatedAt.Local().Format(time.DateTime))
	}
	return nil
}

func (s *Session) light(args []string) {
	if len(args) == 1 {
		switch strings.ToLower(args[0]) {
		case "on":
			s.engine.SetLight(true)
		case "off":
			s.engine.SetLight(false)
		default:
			s.say("app.usage", ":light on|off")
			return
		}
	} else if len(args) > 1 {
		s.say("app.usage", ":light on|off")
		return
	}
	if s.engine.HasLight() {
		s.say("app.light.on")
	} else {
		s.say("app.light.off")
	}
}

func (s *Session) give(args []string) error {
	if len(args) == 0 {
		s.say("app.usage", ":give TOOL")
		return nil
	}
	phrase := strings.Join(args, " ")
	toolType, ok := s.engine.Tools().Resolve(phrase)
	if !ok {
		toolType = tool.Type(naming.NormalizeIdentifier(phrase))
	}
	if err := s.engine.AddPlayerTool(toolType); err != nil {
		return err
	}
	held, _ := s.engine.Tools().Lookup(toolType)
	s.say("app.given", held.Name)
	return nil
}

func (s *Session) facts() {
	facts := s.engine.PlayerFacts()
	if len(facts) == 0 {
		s.say("app.facts.none")
		return
	}
	s.say("app.facts.header")
	for _, fact := range facts {
		s.say("app.facts.entry", naming.Humanize(fact))
	}
}

func (s *Session) stats() {
	stats := s.engine.Statistics()
	s.say("app.stats",
		stats.ObjectsInspected,
		len(s.engine.ObjectIDs()),
		stats.FullyInspected,
		stats.FactsDiscovered,
		stats.ItemsDiscovered,
		stats.HotspotsDiscovered)
	if recent := s.engine.RecentlyInspected(s.recent); len(recent) > 0 {
		names := make([]string, 0, len(recent))
		for _, id := range recent {
			if obj, ok := s.engine.Object(id); ok {
				names = append(names, obj.Name)
			}
		}
		s.say("app.recent", strings.Join(names, ", "))
	}
}

func (s *Session) seed(args []string) {
	switch len(args) {
	case 0:
		s.say("app.seed", strconv.FormatInt(s.engine.Seed(), 10))
	case 1:
		seed, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			s.say("app.usage", ":seed [N]")
			return
		}
		s.engine.SetSeed(seed)
		s.say("app.seed.set", strconv.FormatInt(seed, 10))
	default:
		s.say("app.usage", ":seed [N]")
	}
}

func (s *Session) say(key string, args ...any) {
	fmt.Fprintln(s.out, s.printer.Sprintf(key, args...))
}
