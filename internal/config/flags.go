package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into backend, behavior, display, and utility.
// Help/version flags are applied after Parse so they can short-circuit the
// positional-argument requirement.

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// ParseFlags parses os.Args into cfg. On --help or --version it prints and
// exits. On error it returns non-nil (e.g. unknown flag, bad endpoint list,
// missing positional args).
func ParseFlags(cfg *Config, version string) error {
	fs := flag.NewFlagSet("wavdenoise", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs, version) }

	var util utilityFlags

	defineBackendFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &util)
	defineUtilityFlags(fs, &util)

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	applyColorFlags(cfg, &util)

	if util.showHelp {
		printUsage(fs, version)
		os.Exit(0)
	}
	if util.showVersion {
		fmt.Fprintln(os.Stdout, "wavdenoise v"+version)
		os.Exit(0)
	}

	return parsePositionalArgs(fs, cfg)
}

// utilityFlags holds boolean flags that are applied after Parse.
// These either override the color mode or trigger exit (showHelp, showVersion).
type utilityFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineBackendFlags registers -m/--mode, --addr-api, --model,
// --nnnoiseless-path, --model-path.
func defineBackendFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Var(&dispatchModeValue{&cfg.Mode}, "mode", "Backend mode: remote | local")
	fs.Var(&dispatchModeValue{&cfg.Mode}, "m", "Same as --mode")
	fs.Var(&endpointListValue{&cfg.APIAddrs}, "addr-api", "Backend URL, or comma-separated URLs for a round-robin pool")
	fs.StringVar(&cfg.Model, "model", "", "Model identifier forwarded to remote backends")
	fs.StringVar(&cfg.DenoiserPath, "nnnoiseless-path", cfg.DenoiserPath, "Path to the local denoiser executable")
	fs.StringVar(&cfg.ModelPath, "model-path", "", "Model file passed as --model=<path> to the subprocess")
}

// defineBehaviorFlags registers --dry-run and --skip-existing.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Preview only; do not dispatch")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
	fs.BoolVar(&cfg.SkipExisting, "skip-existing", false, "Skip files whose output already exists")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, u *utilityFlags) {
	fs.BoolVar(&u.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&u.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run backend diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, u *utilityFlags) {
	fs.BoolVar(&u.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&u.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&u.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&u.showHelp, "h", false, "Same as --help")
}

// applyColorFlags resolves --color / --no-color into cfg.ColorMode.
func applyColorFlags(cfg *Config, u *utilityFlags) {
	if u.noColor {
		cfg.ColorMode = ColorNever
	} else if u.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets InputDir and OutputDir from the two positional
// args when not in CheckOnly mode.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if cfg.CheckOnly {
		return nil
	}
	if len(args) != 2 {
		return fmt.Errorf("need exactly input_dir and output_dir")
	}
	cfg.InputDir = NormalizeDirArg(args[0])
	cfg.OutputDir = NormalizeDirArg(args[1])
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet, version string) {
	const col1 = 30 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "wavdenoise v" + version + " - batch WAV denoiser (mono, 16 kHz, 16-bit PCM)"},
		{"", ""},
		{"  wavdenoise [OPTIONS] <input_dir> <output_dir>", ""},
		{"", ""},
		{"Backend", ""},
		{"  -m, --mode <remote|local>", "Backend mode (default: remote)"},
		{"  --addr-api <URL>[,<URL>...]", "Backend URL; a comma-separated list selects a round-robin pool"},
		{"  --model <id>", "Model identifier forwarded to remote backends"},
		{"  --nnnoiseless-path <path>", "Local denoiser executable (default: nnnoiseless on PATH)"},
		{"  --model-path <path>", "Model file passed as --model=<path> to the subprocess"},
		{"", ""},
		{"Behavior", ""},
		{"  -d, --dry-run", "Preview only; do not dispatch"},
		{"  --skip-existing", "Skip files whose output already exists"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "Backend diagnostics (endpoints, executable, model)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapters so enum and list fields work with flag.Var.

type dispatchModeValue struct{ p *DispatchMode }

func (d *dispatchModeValue) String() string { return string(*d.p) }
func (d *dispatchModeValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "remote":
		*d.p = ModeRemote
	case "local":
		*d.p = ModeLocal
	default:
		return fmt.Errorf("invalid mode %q (use 'remote' or 'local')", s)
	}
	return nil
}

type endpointListValue struct{ p *[]string }

func (e *endpointListValue) String() string {
	if e.p == nil {
		return ""
	}
	return strings.Join(*e.p, ",")
}
func (e *endpointListValue) Set(s string) error {
	addrs, err := ParseEndpoints(s)
	if err != nil {
		return err
	}
	*e.p = addrs
	return nil
}
