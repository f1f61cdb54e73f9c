// Command maskfx-shaders compiles the embedded mask effect WGSL programs to
// SPIR-V, writing one <name>.spv file per program.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/phanxgames/maskfx"
)

func main() {
	var (
		out     string
		verbose bool
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-v] -out <dir>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.StringVar(&out, "out", "./out", "Path to output `directory`")
	flag.BoolVar(&verbose, "v", false, "Be verbose")
	flag.Parse()

	if len(flag.Args()) != 0 {
		flag.Usage()
		os.Exit(2)
	}

	dief := func(f string, v ...any) {
		fmt.Fprintf(os.Stderr, f, v...)
		fmt.Fprintln(os.Stderr)
		os.Exit(1)
	}

	if verbose {
		maskfx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := os.MkdirAll(out, 0777); err != nil {
		dief("Couldn't create output directory: %s", err)
	}

	for _, name := range maskfx.ShaderNames() {
		src, err := maskfx.ShaderSourceFor(name)
		if err != nil {
			dief("%s", err)
		}
		c, err := maskfx.CompileShader(src)
		if err != nil {
			dief("Couldn't compile %s: %s", name, err)
		}
		if err := c.CheckContract(); err != nil {
			dief("%s", err)
		}
		path := filepath.Join(out, name+".spv")
		if err := os.WriteFile(path, c.SPIRV, 0666); err != nil {
			dief("Couldn't write %q: %s", path, err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "wrote %s (%d words)\n", path, len(c.Words()))
		}
	}
}
