package main

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jcgregorio/logger"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/monkey/environment"
	"github.com/pontaoski/monkey/evaluator"
	"github.com/pontaoski/monkey/lexer"
	"github.com/pontaoski/monkey/parser"
)

const prompt = ">> "

// startREPL evaluates in line by line against env until in is exhausted or
// the user quits. Bindings persist between lines and :env lists them.
func startREPL(in io.Reader, out io.Writer, env *environment.Environment, log *logger.Logger) error {
	scanner := bufio.NewScanner(in)

	fmt.Fprint(out, prompt)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "":
		case ":q", ":quit", ":exit":
			fmt.Fprintln(out, "bye")
			return nil
		case ":env":
			printBindings(out, env)
		default:
			p := parser.NewParser(lexer.NewLexer(line, "repl"))
			program := p.ParseProgram()
			if len(p.Errors()) > 0 {
				printDiagnostics(out, p.Diagnostics())
				break
			}
			log.Debugf("evaluating %d statements", len(program.Statements))
			printResult(out, evaluator.EvalIn(program, env))
		}

		fmt.Fprint(out, prompt)
	}

	if err := scanner.Err(); err != nil {
		return tracerr.Wrap(err)
	}
	fmt.Fprintln(out)
	return nil
}

// printBindings lists every binding visible from env, sorted by name.
func printBindings(out io.Writer, env *environment.Environment) {
	names := env.Names()
	sort.Strings(names)
	for _, name := range names {
		v, _ := env.Get(name)
		fmt.Fprintf(out, "%s = %s\n", name, v.Inspect())
	}
}
