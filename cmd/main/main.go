package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	consts "KiskaLE/GestureDrop-Firewall/internal/const"
	"KiskaLE/GestureDrop-Firewall/internal/config"
	"KiskaLE/GestureDrop-Firewall/internal/firewall"
	"KiskaLE/GestureDrop-Firewall/internal/utils"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	yesFlag      = "yes"
	pauseFlag    = "pause"
	delegateFlag = "delegate"
	scriptFlag   = "script"
	logLevelFlag = "log-level"
	logFileFlag  = "log-file"
	timeoutFlag  = "timeout"
)

type options struct {
	yes      bool
	pause    bool
	delegate string
	script   string
	logLevel string
	logFile  string
	timeout  time.Duration

	cfg *config.Config
}

// exitError ends the process with code. err is printed when set.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func newRootCmd(opts *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           consts.BinaryName,
		Short:         "Open the GestureDrop ports in the local firewall",
		Long:          "Adds the six GestureDrop firewall rules (UDP 5000/5002, TCP 5001, inbound and outbound) on private and domain networks. Safe to run repeatedly.",
		Version:       consts.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetup(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&opts.yes, yesFlag, "y", false, "relaunch elevated without asking")
	flags.BoolVar(&opts.pause, pauseFlag, false, "wait for Enter before exiting")
	flags.StringVar(&opts.delegate, delegateFlag, "auto", "use the provisioning script: auto, always or never")
	flags.StringVar(&opts.script, scriptFlag, "", "path of the provisioning script (default: next to the executable)")
	flags.StringVar(&opts.logLevel, logLevelFlag, "warn", "log level: panic, fatal, error, warn, info, debug, trace")
	flags.StringVar(&opts.logFile, logFileFlag, "console", "log file path, or console")
	flags.DurationVar(&opts.timeout, timeoutFlag, consts.DefaultTimeout*time.Second, "timeout of every firewall command")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "setup",
			Short: "Add or refresh the GestureDrop firewall rules (default)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSetup(cmd, opts)
			},
		},
		newStatusCmd(opts),
		newRemoveCmd(opts),
		newScriptCmd(opts),
	)
	return rootCmd
}

// load merges the .env file, the environment and explicitly set flags, then
// initialises logging.
func (opts *options) load(flags *pflag.FlagSet) error {
	envFile := ""
	if dir, err := utils.ExecutableDir(); err == nil {
		envFile = filepath.Join(dir, consts.EnvFileName)
	}

	cfg, err := config.Load(envFile)
	if err != nil {
		return &exitError{code: 1, err: err}
	}

	if flags.Changed(delegateFlag) {
		mode, err := firewall.ParseDelegateMode(opts.delegate)
		if err != nil {
			return &exitError{code: 1, err: err}
		}
		cfg.Delegate = mode
	}
	if flags.Changed(scriptFlag) {
		cfg.ScriptPath = opts.script
	}
	if flags.Changed(logLevelFlag) {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed(logFileFlag) {
		cfg.LogFile = opts.logFile
	}
	if flags.Changed(timeoutFlag) {
		if opts.timeout <= 0 {
			return &exitError{code: 1, err: fmt.Errorf("--%s must be positive", timeoutFlag)}
		}
		cfg.Timeout = opts.timeout
	}

	if err := utils.InitLog(cfg.LogLevel, cfg.LogFile); err != nil {
		return &exitError{code: 1, err: fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)}
	}
	opts.cfg = cfg
	return nil
}

func waitForEnter(in io.Reader, out io.Writer) {
	fmt.Fprint(out, "\nPress Enter to exit...")
	_, _ = bufio.NewReader(in).ReadString('\n')
}

// exitCode maps the error of a command to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	opts := &options{}
	err := newRootCmd(opts).ExecuteContext(ctx)
	stop()

	var ee *exitError
	if err != nil && (!errors.As(err, &ee) || ee.err != nil) {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
	}
	if opts.pause {
		waitForEnter(os.Stdin, os.Stdout)
	}
	os.Exit(exitCode(err))
}
