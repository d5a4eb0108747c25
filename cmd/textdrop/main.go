package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	textdrop "github.com/textdrop/textdrop"
	settingsAdapter "github.com/textdrop/textdrop/internal/adapters/settings"
	"github.com/textdrop/textdrop/internal/classify"
	"github.com/textdrop/textdrop/internal/domain"
	"github.com/textdrop/textdrop/internal/filebuild"
	"github.com/textdrop/textdrop/internal/split"
)

const helpDescription = `
Turn large pasted text into ready-to-upload files.

The classify, split and build commands run the same pipeline the embedded
engine applies to pastes: detect the content format, break oversized text
into parts, and produce named files. Input comes from a file argument or
stdin.
`

var exampleUsage = strings.TrimSpace(`
  textdrop classify snippet.txt
  cat big.log | textdrop split --max-parts 4 --out ./parts
  textdrop build notes.md --name "meeting notes" --out .
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// readInput returns the text from the optional file argument, or stdin.
func readInput(args []string) (string, error) {
	if len(args) > 0 {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(b), nil
}

// loadSettings resolves the effective settings with flag > env > file >
// default precedence. Explicitly set flags are applied by the caller.
func loadSettings(cfgPath string, flags *pflag.FlagSet, s *domain.Settings) error {
	changed := map[string]bool{}
	flags.Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	path := cfgPath
	if path == "" {
		path = settingsAdapter.DefaultPath()
	}
	if path != "" && settingsAdapter.FileExists(path) {
		loaded, err := settingsAdapter.Load(path)
		if err != nil {
			return err
		}
		*s = loaded
	} else if cfgPath != "" {
		return fmt.Errorf("config file not found: %s", cfgPath)
	}

	return settingsAdapter.ApplyEnv(s, changed)
}

func main() {
	var (
		cfgPath  string
		verbose  bool
		outDir   string
		maxParts int
		format   string
		name     string
	)

	settings := domain.DefaultSettings()
	logger := func() textdrop.Logger {
		if verbose {
			return textdrop.NewZerologLogger("debug")
		}
		return textdrop.NewZerologLogger("warn")
	}

	root := &cobra.Command{
		Use:     "textdrop",
		Short:   "Turn large pasted text into ready-to-upload files",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to settings file (default: $HOME/.textdrop/settings.toml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	classifyCmd := &cobra.Command{
		Use:   "classify [file]",
		Short: "Detect the content format of text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args)
			if err != nil {
				return err
			}
			c := classify.New()
			r := c.Classify(text)
			fmt.Fprintf(cmd.OutOrStdout(), "format: %s\nconfidence: %.2f\nextension: %s\nmime: %s\n",
				r.Format, r.Confidence, classify.ExtensionOf(r.Format), classify.MIMEOf(r.Format))
			return nil
		},
	}

	splitCmd := &cobra.Command{
		Use:   "split [file]",
		Short: "Split oversized text into line-contiguous parts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args)
			if err != nil {
				return err
			}
			if err := loadSettings(cfgPath, cmd.Flags(), &settings); err != nil {
				return err
			}
			if !cmd.Flags().Changed("max-parts") {
				maxParts = settings.MaxParts
			}
			log := logger()
			log.Debug("splitting", textdrop.Int("max_parts", maxParts))

			parts := split.New(classify.New()).Split(text, maxParts)
			if len(parts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "input not split: below size thresholds or structured content")
				return nil
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			builder := filebuild.New(classify.New())
			for _, p := range parts {
				f := builder.BuildPart(p)
				path := filepath.Join(outDir, f.Filename)
				if err := os.WriteFile(path, f.Data, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (lines %d-%d, %s)\n", path, p.StartLine, p.EndLine, p.Format)
			}
			return nil
		},
	}
	splitCmd.Flags().IntVar(&maxParts, "max-parts", settings.MaxParts, "maximum number of parts")
	splitCmd.Flags().StringVar(&outDir, "out", ".", "output directory")

	buildCmd := &cobra.Command{
		Use:   "build [file]",
		Short: "Build a single named, typed file from text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args)
			if err != nil {
				return err
			}
			if err := loadSettings(cfgPath, cmd.Flags(), &settings); err != nil {
				return err
			}
			if !cmd.Flags().Changed("format") {
				format = settings.Format
			}
			log := logger()
			log.Debug("building", textdrop.String("format", format))

			f := filebuild.New(classify.New()).Build(text, format, name)
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			path := filepath.Join(outDir, f.Filename)
			if err := os.WriteFile(path, f.Data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s, %d bytes)\n", path, f.MIME, len(f.Data))
			return nil
		},
	}
	buildCmd.Flags().StringVar(&format, "format", settings.Format, `target format ("auto" or an explicit format name)`)
	buildCmd.Flags().StringVar(&name, "name", "", "custom base filename (auto-generated when empty)")
	buildCmd.Flags().StringVar(&outDir, "out", ".", "output directory")

	root.AddCommand(classifyCmd, splitCmd, buildCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
