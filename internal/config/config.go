// Package config holds runtime configuration: defaults, CLI flag parsing,
// and validation.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// --- Enum types for validated string fields ---

// DispatchMode selects the denoising backend.
type DispatchMode string

const (
	ModeRemote DispatchMode = "remote" // HTTP API, one endpoint or a round-robin pool (default).
	ModeLocal  DispatchMode = "local"  // Per-file subprocess invocation.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// DefaultDenoiser is the local-mode executable name, resolved via PATH
// unless --nnnoiseless-path supplies an explicit location.
const DefaultDenoiser = "nnnoiseless"

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then mutated by [ParseFlags] before being passed (by pointer) to packages
// that need it. After startup path resolution, InputDir and OutputDir hold
// the canonicalized absolute roots.
type Config struct {
	// Paths (set from positional args, canonicalized in main).
	InputDir  string
	OutputDir string

	// Backend selection.
	Mode     DispatchMode
	APIAddrs []string // Remote endpoint URLs from --addr-api; len==1 selects the single-endpoint client.
	Model    string   // Opaque model identifier forwarded in the remote request body.

	// Local subprocess settings.
	DenoiserPath string // Default: "nnnoiseless" (PATH lookup).
	ModelPath    string // Passed to the subprocess as --model=<path> when set.

	// Behavior flags.
	DryRun       bool
	SkipExisting bool // Default: false. Set by --skip-existing.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with all defaults. Used as the base before
// [ParseFlags] applies CLI overrides.
func DefaultConfig() Config {
	return Config{
		Mode:         ModeRemote,
		DenoiserPath: DefaultDenoiser,
		DryRun:       false,
		SkipExisting: false,
		Verbose:      false,
		ColorMode:    ColorAuto,
		CheckOnly:    false,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an
// empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks the mode enum and the mode-specific flag combinations:
// remote mode requires at least one endpoint and rejects the local-only
// flags; local mode rejects the remote-only flags. When not in CheckOnly
// mode it also requires both directory paths.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeRemote, ModeLocal:
		// valid
	default:
		return errors.New("invalid mode (use 'remote' or 'local')")
	}

	if c.Mode == ModeRemote {
		if len(c.APIAddrs) == 0 {
			return errors.New("remote mode needs --addr-api with at least one endpoint")
		}
		if c.ModelPath != "" {
			return errors.New("--model-path applies to local mode only (use --model for remote backends)")
		}
	} else {
		if len(c.APIAddrs) != 0 {
			return errors.New("--addr-api applies to remote mode only")
		}
		if c.Model != "" {
			return errors.New("--model applies to remote mode only (use --model-path for the subprocess)")
		}
		if c.DenoiserPath == "" {
			return errors.New("denoiser executable path must not be empty")
		}
	}

	if c.CheckOnly {
		return nil
	}
	if c.InputDir == "" || c.OutputDir == "" {
		return errors.New("need exactly input_dir and output_dir")
	}
	return nil
}

// ParseEndpoints splits a comma-separated --addr-api value into a list of
// endpoint URLs. Surrounding whitespace is trimmed per element; an empty
// element (e.g. a trailing comma) is an error because a pool must never
// contain a blank endpoint.
func ParseEndpoints(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New("endpoint list must not be empty")
	}
	parts := strings.Split(raw, ",")
	addrs := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fmt.Errorf("endpoint list %q contains an empty element", raw)
		}
		addrs = append(addrs, p)
	}
	return addrs, nil
}

// ValidatePaths ensures the resolved output directory is not inside (or
// equal to) the resolved input directory. This prevents the walk from
// discovering freshly denoised files as new inputs. Both arguments must be
// absolute, symlink-resolved paths.
func (c *Config) ValidatePaths(inputAbs, outputAbs string) error {
	sep := string(filepath.Separator)
	if outputAbs == inputAbs || strings.HasPrefix(outputAbs+sep, inputAbs+sep) {
		return errors.New("output directory must not be inside input directory")
	}
	return nil
}
