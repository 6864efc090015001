package dispatch

import (
	"fmt"
	"io"
	"os"
	"strconv"
)

// NumArgs is the size of the fixed positional argument vector:
// apiGeneration, schemaResourcePath, outputFile, rootName (may be
// empty), configFile (may be empty).
const NumArgs = 5

// Run executes the compile pipeline for one artifact and returns the
// process exit code: 0 on success, 1 on a missing schema resource or
// error diagnostics. Diagnostics go to stderr as "[error] msg" /
// "[warning] msg" lines, one per diagnostic, in reported order.
//
// Run is the whole body of the isolated process; everything it needs
// arrives through args and the ClasspathEnv variable.
func Run(args []string, stderr io.Writer) int {
	if len(args) != NumArgs {
		panic(fmt.Sprintf("compile-exec requires exactly %d arguments, got %d", NumArgs, len(args)))
	}
	generation, err := strconv.Atoi(args[0])
	if err != nil {
		panic(fmt.Sprintf("compile-exec: malformed api generation %q", args[0]))
	}
	schemaPath, outputFile, rootName, configFile := args[1], args[2], args[3], args[4]

	resolver := ResolverFromEnv()

	// The schema resource must exist before anything else runs.
	resolvedFile, err := resolver.Resolve(schemaPath)
	if err != nil {
		fmt.Fprintf(stderr, "[error] %v\n", err)
		return 1
	}

	out, err := os.Create(outputFile)
	if err != nil {
		fmt.Fprintf(stderr, "[error] failed to open output %s: %v\n", outputFile, err)
		return 1
	}
	defer out.Close()

	engine, err := engineFor(generation, resolver)
	if err != nil {
		fmt.Fprintf(stderr, "[error] %v\n", err)
		return 1
	}

	if configFile != "" {
		tunables, err := LoadTunables(configFile)
		if err != nil {
			fmt.Fprintf(stderr, "[error] %v\n", err)
			return 1
		}
		for _, tun := range tunables {
			if err := engine.Config().Set(tun.Name, tun.Value); err != nil {
				fmt.Fprintf(stderr, "[error] %v\n", err)
				return 1
			}
		}
	}

	ref, err := schemaRefFor(generation, schemaPath, resolvedFile)
	if err != nil {
		fmt.Fprintf(stderr, "[error] %v\n", err)
		return 1
	}

	factory, err := engine.Compile(ref, rootName, "")
	if err != nil {
		fmt.Fprintf(stderr, "[error] %v\n", err)
		return 1
	}
	printDiagnostics(stderr, factory.Diagnostics())
	if factory.IsError() {
		return 1
	}

	processor, err := factory.OnPath("/")
	if err != nil {
		fmt.Fprintf(stderr, "[error] %v\n", err)
		return 1
	}
	printDiagnostics(stderr, processor.Diagnostics())
	if processor.IsError() {
		return 1
	}

	if err := processor.Save(out); err != nil {
		fmt.Fprintf(stderr, "[error] %v\n", err)
		return 1
	}
	return 0
}

func printDiagnostics(w io.Writer, diags []Diagnostic) {
	for _, d := range diags {
		level := "warning"
		if d.Error {
			level = "error"
		}
		fmt.Fprintf(w, "[%s] %s\n", level, d.Message)
	}
}
