package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"sort"

	"github.com/spf13/cobra"

	"github.com/piechiang/taxengine/internal/calculation"
	"github.com/piechiang/taxengine/internal/config"
	"github.com/piechiang/taxengine/internal/domain"
	"github.com/piechiang/taxengine/internal/output"
	"github.com/piechiang/taxengine/internal/rules"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "taxengine %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

var rootCmd = &cobra.Command{
	Use:   "taxengine",
	Short: "US personal income tax calculator",
	Long:  "Computes federal and state personal income tax from a structured taxpayer record",
}

// buildRegistry starts from the built-in bundles and layers any rule
// files the caller supplied on top.
func buildRegistry(cmd *cobra.Command) (*rules.Registry, error) {
	registry := rules.NewDefaultRegistry()

	if files, _ := cmd.Flags().GetStringSlice("rules"); len(files) > 0 {
		for _, f := range files {
			if _, err := registry.LoadFederalFile(f); err != nil {
				return nil, err
			}
		}
	}
	if files, _ := cmd.Flags().GetStringSlice("state-rules"); len(files) > 0 {
		for _, f := range files {
			if _, err := registry.LoadStateFile(f); err != nil {
				return nil, err
			}
		}
	}
	return registry, nil
}

// expandInputs resolves each argument to input files; a directory
// argument expands to the YAML files directly inside it.
func expandInputs(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		for _, pattern := range []string{"*.yaml", "*.yml"} {
			matches, err := filepath.Glob(filepath.Join(arg, pattern))
			if err != nil {
				return nil, err
			}
			files = append(files, matches...)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no input files found")
	}
	sort.Strings(files)
	return files, nil
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [input-file-or-dir...]",
	Short: "Calculate federal and state tax for one or more taxpayer records",
	Long: "Runs the calculation pipeline over each input file. A directory " +
		"argument expands to the YAML files inside it. A record that fails " +
		"validation produces a zeroed result with its errors listed; the " +
		"remaining files still run.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := buildRegistry(cmd)
		if err != nil {
			return err
		}
		inputs, err := expandInputs(args)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		verbose, _ := cmd.Flags().GetBool("verbose")

		engine := calculation.NewEngine()
		if verbose {
			engine.SetLogger(simpleCLILogger{})
		}
		parser := config.NewInputParser()
		reporter := output.NewReportGenerator()

		failures := 0
		for _, inputFile := range inputs {
			input, err := parser.LoadFromFile(inputFile)
			if input == nil {
				// Unreadable or unparseable file; keep going.
				fmt.Fprintf(os.Stderr, "%s: %v\n", inputFile, err)
				failures++
				continue
			}

			federalRules, err := registry.Federal(input.Year)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", inputFile, err)
				failures++
				continue
			}

			fed := engine.ComputeFederal(input, federalRules)
			var state *domain.StateResult
			if input.State != nil && !fed.Diagnostics.HasErrors() {
				stateRules, err := registry.State(input.Year, input.State.State)
				if err != nil {
					fmt.Fprintf(os.Stderr, "%s: %v\n", inputFile, err)
				}
				state = engine.ComputeState(fed, input, stateRules)
			}
			if err := reporter.Generate(os.Stdout, fed, state, format); err != nil {
				return err
			}
			if fed.Diagnostics.HasErrors() {
				failures++
			}
		}
		if failures > 0 {
			return fmt.Errorf("%d of %d records failed", failures, len(inputs))
		}
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate a taxpayer record without calculating",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		_, err := parser.LoadFromFile(args[0])
		if err == nil {
			fmt.Println("input is valid")
			return nil
		}
		if verr, ok := err.(*config.ValidationError); ok {
			for _, fe := range verr.Fields {
				fmt.Fprintf(os.Stderr, "%s: %s\n", fe.Field, fe.Message)
			}
			return fmt.Errorf("%d validation problems", len(verr.Fields))
		}
		return err
	},
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List registered rule sets",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := buildRegistry(cmd)
		if err != nil {
			return err
		}
		for _, year := range registry.Years() {
			rs, _ := registry.Federal(year)
			fmt.Printf("%d  federal (%s)\n", year, rs.Metadata.Source)
			for _, code := range registry.StateCodes(year) {
				fmt.Printf("      state %s\n", code)
			}
		}
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{calculateCmd, rulesCmd} {
		cmd.Flags().StringSlice("rules", nil, "additional federal rule YAML files")
		cmd.Flags().StringSlice("state-rules", nil, "additional state rule YAML files")
	}
	calculateCmd.Flags().String("format", "text", "output format: text, json or csv")
	calculateCmd.Flags().Bool("verbose", false, "enable engine debug logging")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
