// Advcore inspects and maintains adventure-game logic projects: typed node
// graphs, interaction rules, and their JSON persistence.
// Usage: advcore [--version] [--plain] [--init] [--registry <file>]
//
//	[--lua <dir>] [--script <file>] <project_directory>
package main

import (
	"fmt"
	"os"

	"github.com/nathoo/advcore/cli"
	"github.com/nathoo/advcore/codec"
	"github.com/nathoo/advcore/loader"
	"github.com/nathoo/advcore/project"
	"github.com/nathoo/advcore/registry"
	"github.com/nathoo/advcore/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	plain := false
	initProject := false
	var projectDir string
	var registryFile string
	var luaDir string
	var scriptFile string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("advcore %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--init":
			initProject = true
		case "--registry":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--registry requires a file path\n")
				os.Exit(1)
			}
			i++
			registryFile = args[i]
		case "--lua":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--lua requires a directory\n")
				os.Exit(1)
			}
			i++
			luaDir = args[i]
		case "--script":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--script requires a file path\n")
				os.Exit(1)
			}
			i++
			scriptFile = args[i]
		default:
			if projectDir == "" {
				projectDir = args[i]
			}
		}
	}

	if projectDir == "" && luaDir == "" {
		fmt.Fprintf(os.Stderr, "Usage: advcore [--version] [--plain] [--init] [--registry <file>] [--lua <dir>] [--script <file>] <project_directory>\n")
		os.Exit(1)
	}

	reg := registry.Builtin()
	if registryFile != "" {
		var err error
		reg, err = registry.Load(registryFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading registry: %v\n", err)
			os.Exit(1)
		}
	}

	var store *codec.Store
	if projectDir != "" {
		store = codec.NewStore(projectDir)
	}

	if initProject {
		if store == nil {
			fmt.Fprintf(os.Stderr, "--init requires a project directory\n")
			os.Exit(1)
		}
		if err := store.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Initialized empty project in %s\n", projectDir)
		return
	}

	var p *project.Project
	if luaDir != "" {
		var err error
		p, err = loader.Load(luaDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error importing scripts: %v\n", err)
			os.Exit(1)
		}
	} else {
		var errs []error
		p, errs = store.Load()
		for _, err := range errs {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	// Script mode: replay commands from a file, plain output.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c := cli.New(p, reg, store)
		c.In = f
		c.NoColor = true
		c.Run()
		return
	}

	// Use the plain CLI if --plain or stdout is not a terminal.
	if plain || !isTerminal() {
		c := cli.New(p, reg, store)
		c.NoColor = !isTerminal()
		c.Run()
		return
	}

	if err := tui.Run(p, reg, store); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
