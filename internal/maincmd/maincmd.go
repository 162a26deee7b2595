// Package maincmd implements the command-line front end: it owns
// argument parsing, file I/O, and stdout/stderr reporting, and calls
// into the expander, parser and optimizer packages to do the actual
// work.
//
// It uses mainer.Cmd's shape (struct-tag driven flags, a Validate step,
// a single Main entry point) trimmed to a single command: wbfc only
// ever does one thing, compile one input file, so there is no
// subcommand registry to build from reflection.
package maincmd

import (
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/wbf-lang/wbfc"
)

const binName = "wbfc"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <path>
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <path>
       %[1]s -h|--help
       %[1]s -v|--version

Compiles a WBF source file down to plain Brainfuck.

Valid flag options are:
       -o --output PATH          Write the compiled output to PATH. If
                                 omitted, no file is written.
       -O --opt-level N          Optimisation level, 0..5 (default 3).
       -p --print                Print the compiled output to stdout.
       --unsafe-io               Fold long runs of '.'/',' through a
                                 counter loop. Opt-in: assumes the
                                 scratch cell it borrows is otherwise
                                 dead.
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
`, binName)
)

// Cmd is the wbfc command. BuildVersion and BuildDate are set by the
// main package at link time.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help     bool   `flag:"h,help"`
	Version  bool   `flag:"v,version"`
	Output   string `flag:"o,output"`
	OptLevel int    `flag:"O,opt-level"`
	Print    bool   `flag:"p,print"`
	UnsafeIO bool   `flag:"unsafe-io"`

	args []string
}

// SetArgs stores the positional arguments left over after flag parsing.
func (c *Cmd) SetArgs(args []string) { c.args = args }

// SetFlags is required by mainer.Parser's interface; wbfc has no flags
// whose mere presence (as opposed to value) matters, so this is a no-op.
func (c *Cmd) SetFlags(map[string]bool) {}

// Validate checks the parsed flags and positional arguments.
func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if len(c.args) != 1 {
		return fmt.Errorf("expected exactly one input path, got %d", len(c.args))
	}
	if c.OptLevel < 0 || c.OptLevel > 5 {
		return fmt.Errorf("-O: optimisation level must be 0..5, got %d", c.OptLevel)
	}
	return nil
}

// Main parses args, validates them, and runs the compile, reporting a
// single human-readable error line on failure.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	c.OptLevel = 3 // mainer.Parser does not apply defaults itself

	p := mainer.Parser{EnvVars: false}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	if err := c.compile(stdio); err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return mainer.Failure
	}
	return mainer.Success
}

func (c *Cmd) compile(stdio mainer.Stdio) error {
	path := c.args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	out, err := wbfc.Compile(src, c.OptLevel, c.UnsafeIO)
	if err != nil {
		return err
	}

	if c.Output != "" {
		if err := os.WriteFile(c.Output, []byte(out), 0o644); err != nil {
			return err
		}
	}
	if c.Print {
		fmt.Fprint(stdio.Stdout, out)
	}
	return nil
}
