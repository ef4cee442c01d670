package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ErrUnknown is returned by Execute for a subcommand that was never registered.
var ErrUnknown = errors.New("unknown command")

// Command is a subcommand with its own flags and a Run function.
// Flags are defined on FlagSet; Run is called after Parse with the remaining positional arguments.
type Command struct {
	Name    string
	Usage   string
	FlagSet *flag.FlagSet
	Run     func(args []string) error
}

// Registry holds subcommands by name. Add commands with Register; run with Execute.
type Registry struct {
	cmds     map[string]*Command
	fallback string
}

// NewRegistry returns an empty command registry. fallback names the command run
// when the arguments do not start with a subcommand name.
func NewRegistry(fallback string) *Registry {
	return &Registry{cmds: make(map[string]*Command), fallback: fallback}
}

// Register adds a subcommand. fs is that command's FlagSet; run is called after
// fs.Parse succeeds. fs is switched to ContinueOnError so Execute can report parse failures.
func (r *Registry) Register(name, usage string, fs *flag.FlagSet, run func(args []string) error) {
	fs.Init(name, flag.ContinueOnError)
	r.cmds[name] = &Command{Name: name, Usage: usage, FlagSet: fs, Run: run}
}

// Names returns the registered command names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for n := range r.cmds {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Execute runs the subcommand in args[0] with args[1:] as flag/positional arguments.
// Empty args, or args starting with a flag, run the fallback command with all of args.
func (r *Registry) Execute(args []string) error {
	name := r.fallback
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		name, args = args[0], args[1:]
	}
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknown, name)
	}
	if err := cmd.FlagSet.Parse(args); err != nil {
		return err
	}
	return cmd.Run(cmd.FlagSet.Args())
}

// PrintUsage writes one line per command to w.
func (r *Registry) PrintUsage(w io.Writer) {
	for _, n := range r.Names() {
		fmt.Fprintf(w, "  %-8s %s\n", n, r.cmds[n].Usage)
	}
}
