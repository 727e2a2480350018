// Package check provides backend diagnostics (--check mode) and pre-run
// dependency validation (CheckDeps) for the remote endpoints or the local
// denoiser executable and model file.
package check

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/backmassage/wavdenoise/internal/config"
)

// Sentinel errors returned by CheckDeps when a required backend piece is
// missing or malformed.
var (
	ErrDenoiserNotFound = errors.New("denoiser executable not found")
	ErrBadEndpoint      = errors.New("invalid backend endpoint URL")
	ErrModelNotFound    = errors.New("model file not found")
)

// dialTimeout bounds the reachability probe in --check mode.
const dialTimeout = 2 * time.Second

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck runs the interactive --check flow: endpoint URL validation and a
// TCP reachability probe in remote mode, executable and model-file lookup in
// local mode. Informational only; returns false when anything required is
// broken.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== Backend Check ===")

	if cfg.Mode == config.ModeLocal {
		return checkLocal(cfg, log)
	}
	return checkRemote(cfg, log)
}

// checkRemote validates each endpoint URL and probes its TCP address.
// An unreachable endpoint is a warning (the server may simply be down right
// now); a malformed URL is an error.
func checkRemote(cfg *config.Config, log Logger) bool {
	ok := true
	for i, addr := range cfg.APIAddrs {
		host, err := endpointHost(addr)
		if err != nil {
			log.Error("Endpoint %d: %v", i, err)
			ok = false
			continue
		}
		conn, err := net.DialTimeout("tcp", host, dialTimeout)
		if err != nil {
			log.Warn("Endpoint %d: %s not reachable (%v)", i, addr, err)
			continue
		}
		conn.Close()
		log.Success("Endpoint %d: %s reachable", i, addr)
	}
	if len(cfg.APIAddrs) > 1 {
		log.Info("Pool mode: %d endpoints, strict round-robin, no failover", len(cfg.APIAddrs))
	}
	if cfg.Model != "" {
		log.Info("Model identifier: %s (forwarded as-is)", cfg.Model)
	}
	return ok
}

// checkLocal locates the denoiser executable, shows its version when it
// reports one, and stats the model file.
func checkLocal(cfg *config.Config, log Logger) bool {
	ok := true

	path, err := exec.LookPath(cfg.DenoiserPath)
	if err != nil {
		log.Error("Denoiser not found: %s", cfg.DenoiserPath)
		ok = false
	} else {
		log.Success("Denoiser: %s", path)
		if v := denoiserVersion(path); v != "" {
			log.Info("  %s", v)
		}
	}

	if cfg.ModelPath != "" {
		if fi, err := os.Stat(cfg.ModelPath); err != nil {
			log.Error("Model file not found: %s", cfg.ModelPath)
			ok = false
		} else {
			log.Success("Model file: %s (%d bytes)", cfg.ModelPath, fi.Size())
		}
	}
	return ok
}

// denoiserVersion runs "<exe> --version" and returns the first output line,
// or "" when the executable does not support the flag.
func denoiserVersion(exe string) string {
	out, err := exec.Command(exe, "--version").Output()
	if err != nil {
		return ""
	}
	line := strings.TrimSpace(string(out))
	if idx := strings.Index(line, "\n"); idx > 0 {
		line = line[:idx]
	}
	return line
}

// CheckDeps is the fail-fast pre-run validation: every endpoint must be a
// well-formed http(s) URL (remote mode), or the executable must resolve and
// the model file exist (local mode).
func CheckDeps(cfg *config.Config) error {
	if cfg.Mode == config.ModeLocal {
		if _, err := exec.LookPath(cfg.DenoiserPath); err != nil {
			return fmt.Errorf("%w: %s", ErrDenoiserNotFound, cfg.DenoiserPath)
		}
		if cfg.ModelPath != "" {
			if _, err := os.Stat(cfg.ModelPath); err != nil {
				return fmt.Errorf("%w: %s", ErrModelNotFound, cfg.ModelPath)
			}
		}
		return nil
	}

	for _, addr := range cfg.APIAddrs {
		if _, err := endpointHost(addr); err != nil {
			return err
		}
	}
	return nil
}

// endpointHost validates addr as an http(s) URL and returns its host:port
// for dialing, defaulting the port from the scheme.
func endpointHost(addr string) (string, error) {
	u, err := url.Parse(addr)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrBadEndpoint, addr, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q (need http:// or https:// with a host)", ErrBadEndpoint, addr)
	}
	host := u.Host
	if u.Port() == "" {
		port := "80"
		if u.Scheme == "https" {
			port = "443"
		}
		host = net.JoinHostPort(u.Hostname(), port)
	}
	return host, nil
}
