package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/repr"
	"github.com/fatih/color"
	"github.com/jcgregorio/logger"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/monkey/ast"
	"github.com/pontaoski/monkey/environment"
	"github.com/pontaoski/monkey/errors"
	"github.com/pontaoski/monkey/evaluator"
	"github.com/pontaoski/monkey/lexer"
	"github.com/pontaoski/monkey/object"
	"github.com/pontaoski/monkey/parser"
)

var (
	errColor    = color.New(color.FgRed)
	resultColor = color.New(color.FgGreen)
)

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
func (discard) Sync() error                 { return nil }

func newLogger(c *cli.Context) *logger.Logger {
	var dst logger.SyncWriter = discard{}
	if c.Bool("verbose") {
		dst = os.Stderr
	}
	return logger.NewFromOptions(&logger.Options{
		SyncWriter:   dst,
		IncludeDebug: true,
	})
}

func readSource(c *cli.Context) (string, string, error) {
	file := c.Args().First()
	if file == "" {
		return "", "", tracerr.New("no input file provided")
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", "", tracerr.Wrap(err)
	}
	return string(data), file, nil
}

// parseSource parses src and reports any diagnostics to w. If there were any,
// the returned error only carries the exit status.
func parseSource(w io.Writer, src, file string) (*ast.Program, error) {
	p := parser.NewParser(lexer.NewLexer(src, file))
	program := p.ParseProgram()
	if err := p.Err(); err != nil {
		printDiagnostics(w, p.Diagnostics())
		return program, cli.Exit("", 1)
	}
	return program, nil
}

func printDiagnostics(w io.Writer, diags []error) {
	for _, d := range diags {
		if l, ok := d.(errors.Located); ok {
			errColor.Fprintf(w, "%s: %s\n", l.Span().From, l.Error())
			continue
		}
		errColor.Fprintln(w, d.Error())
	}
}

func printResult(w io.Writer, result object.Object) {
	if object.IsError(result) {
		errColor.Fprintln(w, result.Inspect())
		return
	}
	resultColor.Fprintln(w, result.Inspect())
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "monkey",
		Usage: "monkey expression language",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log to stderr",
			},
			&cli.StringFlag{
				Name:  "config",
				Value: configFile,
				Usage: "project configuration file",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "write a project configuration file",
				Action: func(c *cli.Context) error {
					name := c.Args().First()
					if name == "" {
						return tracerr.New("no project name provided")
					}
					return writeConfig(c.String("config"), projectConfig{Name: name})
				},
			},
			{
				Name:  "run",
				Usage: "evaluate a file and print its result",
				Action: func(c *cli.Context) error {
					log := newLogger(c)

					cfg, err := loadConfig(c.String("config"))
					if err != nil {
						return err
					}

					src, file, err := readSource(c)
					if err != nil {
						return err
					}

					program, err := parseSource(c.App.ErrWriter, src, file)
					if err != nil {
						return err
					}
					log.Infof("parsed %d statements from %s", len(program.Statements), file)

					if cfg.Dump {
						fmt.Fprintln(c.App.Writer, program.String())
					}

					env := environment.New()
					if err := cfg.bind(env); err != nil {
						return err
					}

					result := evaluator.EvalIn(program, env)
					printResult(c.App.Writer, result)
					if object.IsError(result) {
						return cli.Exit("", 1)
					}
					return nil
				},
			},
			{
				Name:  "repl",
				Usage: "read, evaluate and print lines from stdin",
				Action: func(c *cli.Context) error {
					cfg, err := loadConfig(c.String("config"))
					if err != nil {
						return err
					}

					env := environment.New()
					if err := cfg.bind(env); err != nil {
						return err
					}

					return startREPL(c.App.Reader, c.App.Writer, env, newLogger(c))
				},
			},
			{
				Name:  "tokens",
				Usage: "dump the token stream of a file",
				Action: func(c *cli.Context) error {
					src, file, err := readSource(c)
					if err != nil {
						return err
					}
					for tok := range lexer.NewLexer(src, file).All() {
						fmt.Fprintf(c.App.Writer, "%s\t%s\n", tok.Location.From, repr.String(tok))
					}
					return nil
				},
			},
			{
				Name:  "ast",
				Usage: "dump the syntax tree of a file",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "canonical",
						Usage: "print the fully parenthesised source instead of the tree",
					},
				},
				Action: func(c *cli.Context) error {
					src, file, err := readSource(c)
					if err != nil {
						return err
					}

					program, err := parseSource(c.App.ErrWriter, src, file)
					if err != nil {
						return err
					}

					if c.Bool("canonical") {
						fmt.Fprintln(c.App.Writer, program.String())
						return nil
					}
					fmt.Fprintln(c.App.Writer, repr.String(program, repr.Indent("  ")))
					return nil
				},
			},
		},
	}
}

func main() {
	app := newApp()
	app.ExitErrHandler = func(c *cli.Context, err error) {
		if err == nil {
			return
		}
		if _, ok := err.(cli.ExitCoder); ok {
			cli.HandleExitCoder(err)
			return
		}
		tracerr.PrintSourceColor(err)
		os.Exit(1)
	}
	app.Run(os.Args)
}
