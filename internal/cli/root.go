// Package cli wires flags, config, and the pipeline into the hammy
// command.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hammyapp/hammy/internal/config"
	"github.com/hammyapp/hammy/internal/img"
	"github.com/hammyapp/hammy/internal/linkfmt"
	"github.com/hammyapp/hammy/internal/logutil"
	"github.com/hammyapp/hammy/internal/pipeline"
	"github.com/hammyapp/hammy/internal/sink"
	"github.com/hammyapp/hammy/internal/source"
	"github.com/hammyapp/hammy/internal/upload"
)

var (
	clipFlag    bool
	singleFlag  bool
	widthFlag   int
	formatFlag  string
	txtFlag     bool
	promptFlag  bool
	verboseFlag bool
	configFlag  string
)

// Execute runs the root command.
func Execute() error {
	return newRootCommand().Execute()
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hammy <file|folder|url>...",
		Short: "Batch-upload images to hamster.is",
		Long: "hammy uploads images from files, folders (recursive), or URLs to the " +
			"hamster.is hosting API, shrinking them under the API size cap when " +
			"needed, and prints the resulting links in the chosen format.",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRoot,
		Example: `  hammy ./shots --format t --clip
  hammy photo.jpg --width 1280
  hammy https://example.com/pic.png --txt`,
	}

	cmd.Flags().BoolVarP(&clipFlag, "clip", "c", false, "Set the resulting links in the clipboard")
	cmd.Flags().BoolVarP(&singleFlag, "single", "s", false, "Output the links on a single line")
	cmd.Flags().IntVarP(&widthFlag, "width", "w", 0, "Resize images to the desired width in pixels")
	cmd.Flags().StringVar(&formatFlag, "format", string(linkfmt.StyleDirect), "Link format (b, d, h, i, m, t, u)")
	cmd.Flags().BoolVarP(&txtFlag, "txt", "t", false, "Output links to a text file")
	cmd.Flags().BoolVar(&promptFlag, "prompt-width", false, "Ask for each shrink width instead of halving")
	cmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose logging")
	cmd.Flags().StringVar(&configFlag, "config", "", "Path to the config file")
	cmd.Flags().SortFlags = false

	return cmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	logutil.SetVerbose(verboseFlag)
	_ = godotenv.Load()

	style, err := linkfmt.ParseStyle(formatFlag)
	if err != nil {
		return err
	}
	if widthFlag < 0 {
		return fmt.Errorf("width must be a positive integer, got %d", widthFlag)
	}

	cfg, cfgPath, err := config.LoadOrCreate(configFlag)
	if err != nil {
		return err
	}

	if cfg.APIKey == "" {
		key, err := promptAPIKey(cmd.InOrStdin(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		cfg.APIKey = key
		if err := config.Save(cfg, cfgPath); err != nil {
			return err
		}
	}

	if err := cfg.EnsureDirs(); err != nil {
		return err
	}

	sources := source.Discover(args)
	if len(sources) == 0 {
		return errors.New("no compatible sources")
	}

	sinks := []sink.Sink{&sink.Console{Out: cmd.OutOrStdout()}}
	if clipFlag {
		clip, err := sink.NewClipboard(singleFlag)
		if err != nil {
			logutil.Warnf("%v", err)
		} else {
			sinks = append(sinks, clip)
		}
	}
	if txtFlag {
		txt, err := sink.NewTextFile(cfg.TxtPath, singleFlag)
		if err != nil {
			return err
		}
		defer txt.Close()
		logutil.Infof("writing links to: %s", txt.Path())
		sinks = append(sinks, txt)
	}

	fitter := img.NewFitter()
	if promptFlag {
		fitter.Policy = img.PromptPolicy{In: cmd.InOrStdin(), Out: cmd.ErrOrStderr()}
	}

	p := &pipeline.Pipeline{
		Fetcher:  source.NewFetcher(),
		Fitter:   fitter,
		Uploader: upload.NewClient(cfg.APIKey, upload.Options{}),
		Style:    style,
		Width:    widthFlag,
		Sinks:    sinks,
	}

	results := p.Run(cmd.Context(), sources)

	failed := 0
	for _, r := range results {
		if r.Status == pipeline.StatusFailed {
			failed++
		}
	}
	if failed > 0 {
		logutil.Warnf("%d of %d item(s) failed", failed, len(results))
	}
	if failed == len(results) {
		return errors.New("all uploads failed")
	}
	return nil
}

func promptAPIKey(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Enter api key: ")
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read api key: %w", err)
	}
	key := strings.TrimSpace(line)
	if key == "" {
		return "", errors.New("api key must not be empty")
	}
	return key, nil
}
