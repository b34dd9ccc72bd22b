// Command icfp is the toolkit for the ICFP 2024 contest language: parse,
// debug-step and run wire programs, encode/decode string tokens, and talk to
// the contest server.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	icfp "github.com/OMG-ICFP-FTW/icfp2024"
)

const (
	appName     = "icfp"
	historyFile = ".icfp_history"
	prompt      = "> "
)

var (
	errColor   = color.New(color.FgRed)
	valColor   = color.New(color.FgBlue)
	replyColor = color.New(color.FgGreen)
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	switch cmd {
	case "parse":
		os.Exit(cmdParse(os.Args[2:]))
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "step":
		os.Exit(cmdStep(os.Args[2:]))
	case "encode":
		os.Exit(cmdEncode(os.Args[2:]))
	case "decode":
		os.Exit(cmdDecode(os.Args[2:]))
	case "send":
		os.Exit(cmdSend(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "version":
		fmt.Println(icfp.Version)
		return
	case "-h", "--help", "help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`icfp %s (built %s)

Usage:
  %s parse <file|-> [-json]        Parse a wire program and print its AST.
  %s run <file|-> [-budget n]      Fully evaluate a wire program.
  %s step <file|-> [-n max]        Print each reduction step.
  %s encode [text]                 Plain text to an S string token (stdin if no arg).
  %s decode [token]                S token (or bare body) to plain text.
  %s send <file|-> [-raw]          POST wire text to the contest server.
  %s repl [-local]                 Interactive session with the server.
  %s version                       Print the version.

Environment: ICFP_ENDPOINT, ICFP_TOKEN, ICFP_TOKEN_FILE, ICFP_CACHE_DIR.
`, icfp.Version, icfp.BuildDate, appName, appName, appName, appName, appName, appName, appName, appName)
}

// readInput reads a file argument, with "-" meaning stdin.
func readInput(arg string) (string, error) {
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(arg)
	return string(data), err
}

func fail(err error) int {
	errColor.Fprintln(os.Stderr, err.Error())
	return 1
}

// -----------------------------------------------------------------------------
// parse / run / step
// -----------------------------------------------------------------------------

func cmdParse(args []string) int {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "print the AST as JSON")
	file, ok := splitFileArg(fs, args, "parse")
	if !ok {
		return 2
	}

	src, err := readInput(file)
	if err != nil {
		return fail(err)
	}
	expr, err := icfp.Parse(src)
	if err != nil {
		return fail(err)
	}
	if *asJSON {
		data, err := icfp.MarshalExpr(expr)
		if err != nil {
			return fail(err)
		}
		fmt.Println(string(data))
		return 0
	}
	fmt.Println(icfp.FormatExpr(expr))
	return 0
}

func cmdRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	budget := fs.Int("budget", icfp.DefaultBudget, "reduction step budget")
	file, ok := splitFileArg(fs, args, "run")
	if !ok {
		return 2
	}

	src, err := readInput(file)
	if err != nil {
		return fail(err)
	}
	expr, err := icfp.Parse(src)
	if err != nil {
		return fail(err)
	}
	ev := icfp.NewEvaluator()
	ev.Budget = *budget
	v, err := ev.FullyEvaluate(expr)
	if err != nil {
		return fail(err)
	}
	valColor.Println(icfp.FormatValue(v))
	return 0
}

func cmdStep(args []string) int {
	fs := flag.NewFlagSet("step", flag.ExitOnError)
	maxSteps := fs.Int("n", 100, "maximum steps to print")
	file, ok := splitFileArg(fs, args, "step")
	if !ok {
		return 2
	}

	src, err := readInput(file)
	if err != nil {
		return fail(err)
	}
	expr, err := icfp.Parse(src)
	if err != nil {
		return fail(err)
	}

	ev := icfp.NewEvaluator()
	fmt.Printf("%4d  %s\n", 0, icfp.FormatExpr(expr))
	for i := 1; i <= *maxSteps; i++ {
		if _, isLit := expr.(*icfp.Lit); isLit {
			return 0
		}
		expr, err = ev.Step(expr)
		if err != nil {
			return fail(err)
		}
		fmt.Printf("%4d  %s\n", i, icfp.FormatExpr(expr))
	}
	if _, isLit := expr.(*icfp.Lit); !isLit {
		errColor.Fprintf(os.Stderr, "stopped after %d steps without reaching a terminal value\n", *maxSteps)
	}
	return 0
}

// splitFileArg parses flags that may appear after the file argument, the way
// the subcommands are documented above.
func splitFileArg(fs *flag.FlagSet, args []string, name string) (string, bool) {
	if len(args) < 1 || strings.HasPrefix(args[0], "-") && args[0] != "-" {
		fmt.Fprintf(os.Stderr, "usage: %s %s <file|-> [flags]\n", appName, name)
		return "", false
	}
	if err := fs.Parse(args[1:]); err != nil {
		return "", false
	}
	return args[0], true
}

// -----------------------------------------------------------------------------
// encode / decode
// -----------------------------------------------------------------------------

func cmdEncode(args []string) int {
	text, code := argOrStdin(args)
	if code != 0 {
		return code
	}
	fmt.Println("S" + icfp.EncodeString(text))
	return 0
}

func cmdDecode(args []string) int {
	text, code := argOrStdin(args)
	if code != 0 {
		return code
	}
	text = strings.TrimSuffix(text, "\n")
	body := strings.TrimPrefix(text, "S")
	fmt.Println(icfp.DecodeString(body).AsStr())
	return 0
}

func argOrStdin(args []string) (string, int) {
	if len(args) > 0 {
		return strings.Join(args, " "), 0
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fail(err)
	}
	return string(data), 0
}

// -----------------------------------------------------------------------------
// send
// -----------------------------------------------------------------------------

func cmdSend(args []string) int {
	fs := flag.NewFlagSet("send", flag.ExitOnError)
	raw := fs.Bool("raw", false, "print the raw reply instead of the parsed AST")
	file, ok := splitFileArg(fs, args, "send")
	if !ok {
		return 2
	}

	wire, err := readInput(file)
	if err != nil {
		return fail(err)
	}

	client, err := icfp.NewClient()
	if err != nil {
		return fail(err)
	}
	reply, err := client.Send(strings.TrimSpace(wire))
	if err != nil {
		return fail(err)
	}
	if *raw {
		fmt.Println(reply)
		return 0
	}
	expr, err := icfp.Parse(reply)
	if err != nil {
		return fail(err)
	}
	replyColor.Println(renderReply(expr))
	return 0
}

// renderReply shows a bare string reply as its text and anything else as a
// pretty-printed program.
func renderReply(expr icfp.Expr) string {
	if lit, ok := expr.(*icfp.Lit); ok && lit.Val.Tag == icfp.VTStr {
		return lit.Val.AsStr()
	}
	return icfp.FormatExpr(expr)
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(args []string) int {
	fs := flag.NewFlagSet("repl", flag.ExitOnError)
	local := fs.Bool("local", false, "evaluate input as wire programs locally instead of sending")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var client *icfp.Client
	if !*local {
		var err error
		client, err = icfp.NewClient()
		if err != nil {
			return fail(err)
		}
	}

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return 0
		}
		if err != nil {
			return fail(err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch line {
		case "end", "bye", "stop", ":quit":
			fmt.Println("Goodbye!")
			return 0
		}
		ln.AppendHistory(line)

		if *local {
			v, err := icfp.Run(line)
			if err != nil {
				errColor.Fprintln(os.Stderr, err.Error())
				continue
			}
			valColor.Println(icfp.FormatValue(v))
			continue
		}

		expr, err := client.Message(line)
		if err != nil {
			errColor.Fprintln(os.Stderr, err.Error())
			continue
		}
		replyColor.Println(renderReply(expr))
	}
}
