package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/gdscript-compiler/internal/errors"
	"github.com/cwbudde/gdscript-compiler/pkg/compiler"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	platformFlag string
	formatFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "gdscript-compiler <input> <output>",
	Short: "Compile a GDScript-like source file to assembly, object, or executable form",
	Long: `gdscript-compiler lexes, parses, type-checks, and lowers a single
GDScript-like source file, emitting one of three artifacts selected by
--format: textual assembly, a GDOBJ object blob, or a native executable
for the chosen --platform.`,
	Args:          cobra.ExactArgs(2),
	RunE:          runCompile,
	SilenceUsage:  true,
	Version:       Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().StringVarP(&platformFlag, "platform", "p", "", "target platform: windows|win64, macos|mac64, macos-arm|mac-arm, linux|linux64, linux-arm|linux-arm64 (default macos)")
	rootCmd.Flags().StringVarP(&formatFlag, "format", "f", "", "output format: assembly|asm, object|obj, executable|exe (default object)")
}

func runCompile(_ *cobra.Command, args []string) error {
	inputPath, outputPath := args[0], args[1]

	platform, err := compiler.ParsePlatform(platformFlag)
	if err != nil {
		return err
	}
	format, err := compiler.ParseFormat(formatFlag)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", inputPath, err)
	}

	result, warnings, err := compiler.Compile(string(content), inputPath, compiler.Options{
		Platform: platform,
		Format:   format,
	})
	if len(warnings) > 0 {
		fmt.Fprint(os.Stderr, errors.FormatErrors(warnings, true))
	}
	if err != nil {
		return err
	}

	return writeOutputs(outputPath, format, result)
}

func writeOutputs(outputPath string, format compiler.Format, result *compiler.Result) error {
	switch format {
	case compiler.FormatAssembly:
		return os.WriteFile(outputPath+".s", []byte(result.Assembly), 0644)
	case compiler.FormatObject:
		return os.WriteFile(outputPath+".o", result.Object, 0644)
	case compiler.FormatExecutable:
		exePath := outputPath + result.ExecutableExt
		return os.WriteFile(exePath, result.Executable, 0755)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}
