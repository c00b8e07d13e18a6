// Package commands implements the CLI commands for cwaimg.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/cwaimg/internal/app"
	"go.trai.ch/cwaimg/internal/build"
	"go.trai.ch/cwaimg/internal/core/domain"
	"go.trai.ch/cwaimg/internal/core/ports"
)

// DefaultTimeout bounds each HTTP request unless --timeout is given.
const DefaultTimeout = domain.DefaultTimeout

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, opts app.RunOptions) error
	Status(root string, w io.Writer) error
}

// CLI represents the command line interface for cwaimg.
type CLI struct {
	app     Application
	logger  ports.Logger
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app. The logger is configured
// from --debug and --json before any command runs; it may be nil.
func New(a Application, log ports.Logger) *CLI {
	c := &CLI{
		app:    a,
		logger: log,
	}

	rootCmd := &cobra.Command{
		Use:   "cwaimg [DIR]",
		Short: "Download CWA satellite and radar images",
		Long: `Download satellite and radar images published by the Central Weather
Administration into DIR (default "images"), one subdirectory per category.

Files already present are never downloaded again. With --interval the
download cycle repeats until interrupted.`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		Version:           build.Version,
		PersistentPreRunE: c.configureLogger,
		RunE:              c.runDownload,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.Flags()
	flags.String("sat-img", "", "Filter pattern for satellite images")
	flags.String("radar-cloud", "", "Filter pattern for radar cloud images")
	flags.String("radar-rain", "", "Filter pattern for radar rain images")
	flags.String("custom", "", "Filter pattern for a custom task")
	flags.String("custom-list", "", "Listing path of the custom task")
	flags.String("custom-dir", "", "Image directory of the custom task")
	flags.StringP("config", "c", "", "YAML file with additional custom tasks")
	flags.IntP("interval", "i", 0, "Seconds between download cycles (0 runs once)")
	flags.Duration("timeout", DefaultTimeout, "Timeout of each HTTP request")
	flags.IntP("jobs", "j", 1, "Number of tasks processed concurrently")
	flags.String("host", defaultHost(), "Upstream base URL (env "+domain.HostEnvVar+")")

	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("json", false, "Write logs as JSON")

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func (c *CLI) configureLogger(cmd *cobra.Command, _ []string) error {
	if c.logger == nil {
		return nil
	}
	debug, _ := cmd.Flags().GetBool("debug")
	jsonMode, _ := cmd.Flags().GetBool("json")
	c.logger.SetJSON(jsonMode)
	c.logger.SetDebug(debug)
	return nil
}

func (c *CLI) runDownload(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	opts := app.RunOptions{Root: rootDir(args)}
	opts.Satellite, _ = flags.GetString("sat-img")
	opts.RadarCloud, _ = flags.GetString("radar-cloud")
	opts.RadarRain, _ = flags.GetString("radar-rain")
	opts.Custom.Pattern, _ = flags.GetString("custom")
	opts.Custom.ListPath, _ = flags.GetString("custom-list")
	opts.Custom.ImageDir, _ = flags.GetString("custom-dir")
	opts.TaskFile, _ = flags.GetString("config")
	opts.Timeout, _ = flags.GetDuration("timeout")
	opts.Jobs, _ = flags.GetInt("jobs")
	opts.Host, _ = flags.GetString("host")

	interval, _ := flags.GetInt("interval")
	opts.Interval = time.Duration(interval) * time.Second

	return c.app.Run(cmd.Context(), opts)
}

func rootDir(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return domain.DefaultRootDir
}

func defaultHost() string {
	if host := os.Getenv(domain.HostEnvVar); host != "" {
		return host
	}
	return domain.DefaultHost
}
