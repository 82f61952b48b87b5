// Package cli provides the terminal host for a GraphQuest session: a small
// command loop that feeds world events into the engine and prints outcomes.
// It is the debugging surface for script authors; the TUI wraps the same
// dispatch.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/nholm/graphquest/engine"
	"github.com/nholm/graphquest/engine/save"
	"github.com/nholm/graphquest/loader"
	"github.com/nholm/graphquest/types"
)

// CLI handles terminal interaction with the author or player.
type CLI struct {
	Engine    *engine.Engine
	Bundle    *loader.Bundle
	In        io.Reader
	Out       io.Writer
	SaveDir   string
	Trace     bool
	EchoInput bool // echo each input line after the prompt (for script playback)
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine, b *loader.Bundle) *CLI {
	home, _ := os.UserHomeDir()
	return &CLI{
		Engine:  eng,
		Bundle:  b,
		In:      os.Stdin,
		Out:     os.Stdout,
		SaveDir: filepath.Join(home, ".graphquest", "saves"),
	}
}

// Run starts the loop: prompt, input, dispatch, output. The session begins
// with OnGameStart and, when a start room is set, OnEnterRoom.
func (c *CLI) Run() {
	if c.Bundle != nil && c.Bundle.Title != "" {
		c.printLine(c.Bundle.Title)
		c.printLine("")
	}
	c.Engine.SetTrace(c.Trace)
	c.printOutcome(c.Engine.TriggerEvent("game", "", "OnGameStart", nil))
	if loc := c.Engine.Store().Player.Location; loc != "" {
		c.printOutcome(c.Engine.TriggerEvent("room", loc, "OnEnterRoom", map[string]any{"Room": loc}))
	}

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return
			}
			continue
		}

		c.Dispatch(input)
	}
}

// Dispatch runs one game command and prints its outcome.
func (c *CLI) Dispatch(input string) {
	for _, line := range c.DispatchLines(input) {
		c.printLine(line)
	}
}

// DispatchLines runs one game command and returns the output lines. The TUI
// host calls this directly.
func (c *CLI) DispatchLines(input string) []string {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "trigger", "t":
		return c.cmdTrigger(args)
	case "go", "walk", "enter":
		return c.cmdGo(args)
	case "look", "l":
		return c.cmdLook()
	case "take", "get":
		return c.cmdObjectEvent("OnTake", args)
	case "drop":
		return c.cmdObjectEvent("OnDrop", args)
	case "use":
		return c.cmdUse(args)
	case "talk", "speak":
		return c.cmdTalk(args)
	case "tick", "wait", "z":
		return c.cmdTick(args)
	case "elapse":
		return c.cmdElapse(args)
	case "choose", "c":
		return c.cmdChoose(args)
	case "pending":
		return c.cmdPending()
	case "inventory", "i":
		s := c.Engine.Store()
		return []string{fmt.Sprintf("Carrying: %v  Gold: %d", s.Player.Inventory, s.Player.Gold)}
	default:
		return []string{fmt.Sprintf("Unknown command %q. Type /help.", cmd)}
	}
}

func (c *CLI) cmdTrigger(args []string) []string {
	if len(args) < 3 {
		return []string{"Usage: trigger <owner> <ownerID> <Kind> [key=value ...]"}
	}
	payload := map[string]any{}
	for _, kv := range args[3:] {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return []string{fmt.Sprintf("Bad payload field %q, want key=value.", kv)}
		}
		payload[k] = parseScalar(v)
	}
	return c.outcomeLines(c.Engine.TriggerEvent(args[0], args[1], args[2], payload))
}

func (c *CLI) cmdGo(args []string) []string {
	if len(args) == 0 {
		return []string{"Go where?"}
	}
	room := args[len(args)-1]
	s := c.Engine.Store()
	if !s.Exists(room) || s.Category(room) != "room" {
		return []string{fmt.Sprintf("There is no room %q.", room)}
	}
	old := s.Player.Location
	if old == room {
		return []string{"You are already there."}
	}
	s.Player.Location = room
	var lines []string
	if old != "" {
		lines = append(lines, c.outcomeLines(c.Engine.TriggerEvent(
			"room", old, "OnExitRoom", map[string]any{"Room": old}))...)
	}
	lines = append(lines, c.outcomeLines(c.Engine.TriggerEvent(
		"room", room, "OnEnterRoom", map[string]any{"Room": room}))...)
	return lines
}

func (c *CLI) cmdLook() []string {
	loc := c.Engine.Store().Player.Location
	if loc == "" {
		return []string{"You are nowhere."}
	}
	return c.outcomeLines(c.Engine.TriggerEvent(
		"room", loc, "OnLook", map[string]any{"Entity": loc}))
}

func (c *CLI) cmdObjectEvent(kind string, args []string) []string {
	if len(args) == 0 {
		return []string{"Which object?"}
	}
	obj := args[len(args)-1]
	return c.outcomeLines(c.Engine.TriggerEvent(
		"object", obj, kind, map[string]any{"Object": obj}))
}

func (c *CLI) cmdUse(args []string) []string {
	if len(args) == 0 {
		return []string{"Use what?"}
	}
	// "use key on door" fires OnUseWith; "use key" fires OnUse.
	for i, a := range args {
		if (a == "on" || a == "with") && i > 0 && i < len(args)-1 {
			obj, target := args[i-1], args[len(args)-1]
			return c.outcomeLines(c.Engine.TriggerEvent(
				"object", obj, "OnUseWith", map[string]any{"Object": obj, "Target": target}))
		}
	}
	obj := args[len(args)-1]
	return c.outcomeLines(c.Engine.TriggerEvent(
		"object", obj, "OnUse", map[string]any{"Object": obj}))
}

func (c *CLI) cmdTalk(args []string) []string {
	if len(args) == 0 {
		return []string{"Talk to whom?"}
	}
	npc := args[len(args)-1]
	return c.outcomeLines(c.Engine.TriggerEvent(
		"npc", npc, "OnTalk", map[string]any{"NPC": npc}))
}

func (c *CLI) cmdTick(args []string) []string {
	n := 1
	if len(args) > 0 {
		if v, err := strconv.Atoi(args[0]); err == nil && v > 0 {
			n = v
		}
	}
	var lines []string
	for i := 0; i < n; i++ {
		lines = append(lines, c.outcomeLines(c.Engine.Tick())...)
	}
	return lines
}

func (c *CLI) cmdElapse(args []string) []string {
	if len(args) == 0 {
		return []string{"Usage: elapse <seconds>"}
	}
	secs, err := strconv.ParseFloat(args[0], 64)
	if err != nil || secs < 0 {
		return []string{fmt.Sprintf("Bad duration %q.", args[0])}
	}
	d := time.Duration(secs * float64(time.Second))
	return c.outcomeLines(c.Engine.Elapse(d))
}

func (c *CLI) cmdChoose(args []string) []string {
	choices := c.Engine.Choices()
	if len(choices) == 0 {
		return []string{"Nothing is waiting on a choice."}
	}
	if len(args) == 0 {
		return []string{"Usage: choose <option>  (or: choose <runID> <option>)"}
	}
	runID := choices[0].RunID
	optArg := args[0]
	if len(args) > 1 {
		runID, optArg = args[0], args[1]
	}
	opt, err := strconv.Atoi(optArg)
	if err != nil || opt < 1 {
		return []string{fmt.Sprintf("Bad option %q, want 1-based index.", optArg)}
	}
	out, err := c.Engine.Choose(runID, opt-1)
	if err != nil {
		return []string{err.Error()}
	}
	return c.outcomeLines(out)
}

func (c *CLI) cmdPending() []string {
	pending := c.Engine.Pending()
	if len(pending) == 0 {
		return []string{"No suspended runs."}
	}
	var lines []string
	for _, p := range pending {
		line := fmt.Sprintf("%s (%s/%s) waiting on %s", p.RunID, p.Owner, p.OwnerID, p.Waiting)
		if len(p.Options) > 0 {
			line += ": " + strings.Join(p.Options, " | ")
		}
		lines = append(lines, line)
	}
	return lines
}

// handleMeta dispatches meta-commands. Returns true if the session should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/save":
		c.cmdSave(arg)

	case "/load":
		c.cmdLoad(arg)

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/graphs":
		c.cmdGraphs()

	case "/kinds":
		c.cmdKinds(arg)

	case "/trace":
		c.Trace = !c.Trace
		c.Engine.SetTrace(c.Trace)
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdSave(name string) {
	if name == "" {
		name = "quicksave"
	}
	title := ""
	if c.Bundle != nil {
		title = c.Bundle.Title
	}
	data, err := save.Save(c.Engine, title)
	if err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	if err := os.MkdirAll(c.SaveDir, 0o755); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	path := filepath.Join(c.SaveDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Game saved to %s.", name))
}

func (c *CLI) cmdLoad(name string) {
	if name == "" {
		name = "quicksave"
	}
	path := filepath.Join(c.SaveDir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}
	sd, err := save.Load(data)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}
	save.Apply(c.Engine, sd)
	c.printSystem(fmt.Sprintf("Game loaded from %s (turn %d).", name, sd.Turn))

	// Re-enter the restored room.
	if loc := c.Engine.Store().Player.Location; loc != "" {
		c.printOutcome(c.Engine.TriggerEvent("room", loc, "OnEnterRoom", map[string]any{"Room": loc}))
	}
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /save [name]    - Save session (default: quicksave)",
		"  /load [name]    - Load session (default: quicksave)",
		"  /quit           - Exit session",
		"  /help           - Show this help",
		"  /state          - Dump current game state",
		"  /graphs         - List loaded graphs",
		"  /kinds [owner]  - List catalog node kinds",
		"  /trace          - Toggle node firing trace",
		"",
		"Events:",
		"  trigger <owner> <id> <Kind> [k=v ...] - Raw event dispatch",
		"  go <room>           - Move the player",
		"  look (l)            - Fire OnLook on the current room",
		"  take/drop/use <obj> - Object events",
		"  use <obj> on <x>    - OnUseWith",
		"  talk <npc>          - OnTalk",
		"  tick [n] / wait     - Advance game turns",
		"  elapse <seconds>    - Advance realtime delays",
		"  choose <n>          - Answer the pending player choice",
		"  pending             - List suspended runs",
		"  inventory (i)       - Show inventory and gold",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	s := c.Engine.Store()
	c.printSystem(fmt.Sprintf("Turn: %d", s.Turn))
	c.printSystem(fmt.Sprintf("Location: %s", s.Player.Location))
	c.printSystem(fmt.Sprintf("Inventory: %v  Gold: %d", s.Player.Inventory, s.Player.Gold))
	c.printSystem(fmt.Sprintf("Stats: %v", s.Player.Stats))
	if len(s.Player.Needs) > 0 {
		c.printSystem(fmt.Sprintf("Needs: %v", s.Player.Needs))
	}
	if len(s.Flags) > 0 {
		c.printSystem(fmt.Sprintf("Flags: %v", s.Flags))
	}
	if len(s.Counters) > 0 {
		c.printSystem(fmt.Sprintf("Counters: %v", s.Counters))
	}
}

func (c *CLI) cmdGraphs() {
	graphs := c.Engine.Graphs()
	if len(graphs) == 0 {
		c.printSystem("No graphs loaded.")
		return
	}
	for _, g := range graphs {
		c.printSystem(fmt.Sprintf("%s/%s: %d nodes, %d edges",
			g.Owner, g.OwnerID, len(g.Nodes), len(g.Edges)))
	}
}

func (c *CLI) cmdKinds(owner string) {
	var names []string
	if owner == "" {
		for _, def := range c.Engine.Catalog().Kinds() {
			names = append(names, def.Kind)
		}
	} else {
		features := map[string]bool{"combat": true, "trade": true, "needs": true, "dialogue": true}
		for _, def := range c.Engine.Catalog().KindsFor(owner, features) {
			names = append(names, def.Kind)
		}
	}
	sort.Strings(names)
	c.printSystem(strings.Join(names, ", "))
}

// outcomeLines flattens an outcome into printable lines.
func (c *CLI) outcomeLines(out *types.Outcome) []string {
	var lines []string
	lines = append(lines, out.Messages...)
	for _, ch := range out.Choices {
		if ch.Speaker != "" {
			lines = append(lines, ch.Speaker+" waits for your answer:")
		}
		for i, opt := range ch.Options {
			lines = append(lines, fmt.Sprintf("  %d) %s", i+1, opt))
		}
	}
	if c.Trace {
		for _, f := range out.Faults {
			lines = append(lines, fmt.Sprintf("[fault %s %s: %s]", f.NodeID, f.Kind, f.Reason))
		}
		for _, t := range out.Trace {
			lines = append(lines, "[trace] "+t)
		}
	}
	return lines
}

func (c *CLI) printOutcome(out *types.Outcome) {
	for _, line := range c.outcomeLines(out) {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}

// parseScalar turns a payload literal into its natural Go type.
func parseScalar(s string) any {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}
