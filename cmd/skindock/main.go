package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/1broseidon/skindock/internal/ipc"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		os.Exit(runDaemon(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "windows":
		os.Exit(runWindows(os.Args[2:]))
	case "graph":
		os.Exit(runGraph(os.Args[2:]))
	case "drag":
		os.Exit(runDrag(os.Args[2:]))
	case "show", "hide", "raise", "ontop", "reload", "abort":
		os.Exit(runGroupCommand(os.Args[1], os.Args[2:]))
	case "maximize", "unmaximize":
		os.Exit(runMaximize(os.Args[1], os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "skin":
		os.Exit(runSkin(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: skindock <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the skindock daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  windows             List skin windows and their geometry")
	fmt.Fprintln(w, "  graph               Print the docking dependency graph")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  drag                Drag a window to a position")
	fmt.Fprintln(w, "  abort               End a drag session left open by a client")
	fmt.Fprintln(w, "  show / hide         Show or hide every window")
	fmt.Fprintln(w, "  raise               Raise every visible window")
	fmt.Fprintln(w, "  ontop               Toggle always-on-top")
	fmt.Fprintln(w, "  maximize            Maximize a window to the work area")
	fmt.Fprintln(w, "  unmaximize          Restore a maximized window")
	fmt.Fprintln(w, "  reload              Reload the skin file")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  skin validate       Validate a skin file")
	fmt.Fprintln(w, "  skin graph          Print the docking graph of a skin file")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  tui                 Open the interactive docking playground")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'skindock <command> --help' for command-specific options.")
}

// newFlagSet creates a flag set whose usage prints usage and description.
func newFlagSet(name, usage, description string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: skindock "+usage)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, description)
		hasFlags := false
		fs.VisitAll(func(*flag.Flag) { hasFlags = true })
		if hasFlags {
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Flags:")
			fs.PrintDefaults()
		}
	}
	return fs
}

// parseFlags parses args and returns the exit code to use when parsing
// ended the command, or -1 to continue.
func parseFlags(fs *flag.FlagSet, args []string) int {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	return -1
}

func runStatus(args []string) int {
	fs := newFlagSet("status", "status", "Show daemon status via IPC.")
	if code := parseFlags(fs, args); code >= 0 {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	status, err := ipc.NewClient().GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("daemon_running: %v\n", status.DaemonRunning)
	fmt.Printf("state:          %s\n", status.State)
	if status.Session != "" {
		fmt.Printf("session:        %s\n", status.Session)
	}
	fmt.Printf("skin:           %s\n", status.Skin)
	fmt.Printf("windows:        %d\n", status.Windows)
	fmt.Printf("edges:          %d\n", status.Edges)
	fmt.Printf("magnet:         %d\n", status.Magnet)
	fmt.Printf("on_top:         %v\n", status.OnTop)
	fmt.Printf("uptime_seconds: %d\n", status.UptimeSeconds)
	return 0
}

func runWindows(args []string) int {
	fs := newFlagSet("windows", "windows [--json]", "List skin windows in registration order.")
	jsonOut := fs.Bool("json", false, "Output window details as JSON")
	if code := parseFlags(fs, args); code >= 0 {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "windows takes no arguments")
		fs.Usage()
		return 2
	}

	windows, err := ipc.NewClient().ListWindows()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *jsonOut {
		return printJSON(windows)
	}
	for _, w := range windows {
		fmt.Println(formatWindow(w))
	}
	return 0
}

func formatWindow(w ipc.WindowInfo) string {
	line := fmt.Sprintf("%-12s %4dx%-4d at %5d,%-5d layout=%s hosts=%d", w.ID, w.Width, w.Height, w.X, w.Y, w.Layout, w.Bound)
	if !w.Visible {
		line += " hidden"
	}
	if w.Maximized {
		line += " maximized"
	}
	return line
}

func runGraph(args []string) int {
	fs := newFlagSet("graph", "graph [--format text|dot|svg|json] [--out FILE]", "Print the daemon's docking dependency graph.")
	format := fs.String("format", "text", "Output format: text, dot, svg or json")
	out := fs.String("out", "", "Write to FILE instead of stdout")
	if code := parseFlags(fs, args); code >= 0 {
		return code
	}

	g, err := ipc.NewClient().GetGraph()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := emitGraph(*g, *format, *out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runDrag(args []string) int {
	fs := newFlagSet("drag", "drag <window> <left> <top>", "Drag a window (and the windows docked to it) towards a position.")
	if code := parseFlags(fs, args); code >= 0 {
		return code
	}
	if fs.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "drag requires <window> <left> <top>")
		fs.Usage()
		return 2
	}
	left, err := strconv.Atoi(fs.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid left %q\n", fs.Arg(1))
		return 2
	}
	top, err := strconv.Atoi(fs.Arg(2))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid top %q\n", fs.Arg(2))
		return 2
	}

	info, err := ipc.NewClient().Drag(fs.Arg(0), left, top)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(formatWindow(*info))
	return 0
}

func runGroupCommand(name string, args []string) int {
	descriptions := map[string]string{
		"show":   "Show every skin window.",
		"hide":   "Hide every skin window.",
		"raise":  "Raise every visible skin window.",
		"ontop":  "Toggle always-on-top for the window group.",
		"reload": "Reload the skin file. A reload during a drag runs when the drag ends.",
		"abort":  "End the open drag session without its token.",
	}
	fs := newFlagSet(name, name, descriptions[name])
	if code := parseFlags(fs, args); code >= 0 {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "%s takes no arguments\n", name)
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	var err error
	switch name {
	case "show":
		err = client.ShowAll()
	case "hide":
		err = client.HideAll()
	case "raise":
		err = client.RaiseAll()
	case "reload":
		err = client.Reload()
	case "abort":
		err = client.AbortMove()
	case "ontop":
		var onTop bool
		onTop, err = client.ToggleOnTop()
		if err == nil {
			fmt.Printf("on_top: %v\n", onTop)
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runMaximize(name string, args []string) int {
	fs := newFlagSet(name, name+" <window>", "Maximize a window to the work area, or restore it.")
	if code := parseFlags(fs, args); code >= 0 {
		return code
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "%s requires <window>\n", name)
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	var err error
	if name == "maximize" {
		err = client.Maximize(fs.Arg(0))
	} else {
		err = client.Unmaximize(fs.Arg(0))
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func printJSON(v any) int {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
