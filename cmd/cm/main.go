// cmd/cm/main.go
//
// This is the entry point for the cm CLI.
//
// Flow:
// 1. Resolve the project directory (always the working directory)
// 2. Dispatch on the subcommand
// 3. Usage mistakes exit 2, operational failures exit 1
//
// Every command is a single synchronous pass over the filesystem; nothing
// here runs longer than one invocation.

package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/mjbommar/quick-claude/internal/compiler"
	"github.com/mjbommar/quick-claude/internal/config"
	"github.com/mjbommar/quick-claude/internal/fetch"
	"github.com/mjbommar/quick-claude/internal/logging"
	"github.com/mjbommar/quick-claude/internal/module"
	"github.com/mjbommar/quick-claude/internal/store"
	"github.com/mjbommar/quick-claude/internal/tui"
)

const usageText = `cm - Claude module manager

Usage:
    cm init              Initialize the module system
    cm compile           Compile CLAUDE.md from active modules
    cm list              List available modules
    cm activate <name>   Activate matching modules
    cm deactivate <name> Deactivate matching modules
    cm browse            Browse and toggle modules interactively
    cm help              Show this help
`

var (
	categoryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cm: %v\n", err)
		os.Exit(1)
	}
	os.Exit(run(cwd, os.Args[1:], os.Stdout, os.Stderr))
}

func run(projectDir string, args []string, stdout, stderr io.Writer) int {
	command := ""
	if len(args) > 0 {
		command = args[0]
	}

	switch command {
	case "", "help", "-h", "--help":
		fmt.Fprint(stdout, usageText)
		return 0
	case "init":
		return fatalOnErr(stderr, cmdInit(projectDir, stdout))
	case "compile":
		return fatalOnErr(stderr, cmdCompile(projectDir, stdout))
	case "list":
		return fatalOnErr(stderr, cmdList(projectDir, stdout))
	case "activate", "deactivate":
		if len(args) < 2 {
			fmt.Fprintf(stderr, "cm: %s requires a module name\n\n%s", command, usageText)
			return 2
		}
		return fatalOnErr(stderr, cmdToggle(projectDir, stdout, args[1], command == "activate"))
	case "browse":
		return fatalOnErr(stderr, cmdBrowse(projectDir))
	default:
		fmt.Fprintf(stderr, "cm: unknown command %q\n\n%s", command, usageText)
		return 2
	}
}

func fatalOnErr(stderr io.Writer, err error) int {
	if err != nil {
		fmt.Fprintf(stderr, "cm: %v\n", err)
		return 1
	}
	return 0
}

func cmdInit(projectDir string, stdout io.Writer) error {
	fmt.Fprintln(stdout, "Initializing Claude module system...")
	if err := config.Init(projectDir); err != nil {
		return err
	}
	cfg, err := config.New(projectDir)
	if err != nil {
		return err
	}
	logger, _ := logging.New(projectDir)
	defer logger.Close()

	client := fetch.NewClient()
	for _, report := range client.EnsureEssentials(cfg.ModulesDir()) {
		if report.Err != nil {
			return report.Err
		}
		switch report.Source {
		case fetch.SourceExisting:
			// Already present; nothing to say.
		case fetch.SourceRemote:
			fmt.Fprintf(stdout, "  ✓ Downloaded %s/%s\n", report.Category, report.Name)
		default:
			fmt.Fprintf(stdout, "  ✓ Created %s/%s (default)\n", report.Category, report.Name)
		}
		logger.Printf("init: %s/%s (%s)", report.Category, report.Name, report.Source)
	}
	fmt.Fprintln(stdout, "Claude module system initialized.")

	if cfg.AutoCompile() {
		fmt.Fprintln(stdout)
		return compileInto(cfg, logger, stdout)
	}
	fmt.Fprintln(stdout, "\nNext steps:")
	fmt.Fprintln(stdout, "  1. Run 'cm compile' to generate CLAUDE.md")
	fmt.Fprintln(stdout, "  2. Run 'cm list' to see available modules")
	fmt.Fprintln(stdout, "  3. Add custom modules to .claude/modules/")
	return nil
}

func cmdCompile(projectDir string, stdout io.Writer) error {
	cfg, err := config.New(projectDir)
	if err != nil {
		return err
	}
	logger, _ := logging.New(projectDir)
	defer logger.Close()
	return compileInto(cfg, logger, stdout)
}

func compileInto(cfg *config.Config, logger *logging.Logger, stdout io.Writer) error {
	result, err := compiler.New(cfg).Compile()
	if err != nil {
		return err
	}
	logger.Printf("compile: %d modules into %s", len(result.Modules), result.Path)
	fmt.Fprintf(stdout, "Compiled %d modules into %s\n", len(result.Modules), config.OutputFile)
	return nil
}

func cmdList(projectDir string, stdout io.Writer) error {
	cfg, err := config.New(projectDir)
	if err != nil {
		return err
	}
	mods, err := store.New(cfg.ModulesDir()).Modules()
	if err != nil {
		return err
	}
	if len(mods) == 0 {
		fmt.Fprintln(stdout, "No modules found. Run 'cm init' first.")
		return nil
	}

	byCategory := map[string][]module.Module{}
	for _, m := range mods {
		byCategory[m.Category] = append(byCategory[m.Category], m)
	}
	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	fmt.Fprintln(stdout, "Available modules:")
	for _, category := range categories {
		fmt.Fprintf(stdout, "\n  %s\n", categoryStyle.Render(category))
		group := byCategory[category]
		sort.Slice(group, func(i, j int) bool {
			return module.Stem(group[i].Path) < module.Stem(group[j].Path)
		})
		for _, m := range group {
			marker := "○"
			if m.Active {
				marker = "✓"
			}
			fmt.Fprintf(stdout, "    %s %s (priority: %d)\n", marker, module.Stem(m.Path), m.Priority)
		}
	}
	fmt.Fprintf(stdout, "\n%s\n", dimStyle.Render("✓ = active, ○ = inactive"))
	fmt.Fprintln(stdout, dimStyle.Render("To activate: cm activate <module-name>"))
	fmt.Fprintln(stdout, dimStyle.Render("To compile:  cm compile"))
	return nil
}

func cmdToggle(projectDir string, stdout io.Writer, fragment string, active bool) error {
	cfg, err := config.New(projectDir)
	if err != nil {
		return err
	}
	logger, _ := logging.New(projectDir)
	defer logger.Close()

	st := store.New(cfg.ModulesDir())
	var (
		result store.ToggleResult
		verb   string
		marker string
	)
	if active {
		result, err = st.Activate(fragment)
		verb, marker = "Activated", "✓"
	} else {
		result, err = st.Deactivate(fragment)
		verb, marker = "Deactivated", "○"
	}
	if err != nil {
		return err
	}
	if !result.Found() {
		fmt.Fprintf(stdout, "Module %q not found\n", fragment)
		return nil
	}
	for _, stem := range result.Matched {
		fmt.Fprintf(stdout, "%s %s %s\n", marker, verb, stem)
	}
	logger.Printf("%s: %q matched %d, changed %d", verb, fragment, len(result.Matched), result.Changed)
	fmt.Fprintln(stdout, "\nRun 'cm compile' to update CLAUDE.md")
	return nil
}

func cmdBrowse(projectDir string) error {
	cfg, err := config.New(projectDir)
	if err != nil {
		return err
	}
	return tui.Run(cfg)
}
