// Package dispatch sends accepted files to a denoising backend. Three
// interchangeable variants satisfy [Dispatcher]: a single HTTP endpoint, a
// round-robin pool of HTTP endpoints, and a local subprocess. The driver is
// agnostic to which is in use.
package dispatch

import (
	"context"
	"errors"

	"github.com/backmassage/wavdenoise/internal/config"
)

// Request identifies one file to denoise. Both paths are absolute; the
// output parent directory exists before Dispatch is called. The model (an
// opaque identifier for remote backends, a filesystem path for the local
// one) is a construction-time property of the dispatcher, not part of the
// per-item request.
type Request struct {
	Input  string
	Output string
}

// Outcome is the backend-reported per-item result. OK false means the
// backend declined or failed this one file; the run continues. Reason, when
// non-empty, is appended to the skip diagnostic.
type Outcome struct {
	OK     bool
	Reason string
}

// Dispatcher turns a Request into a produced output file, by whatever
// means. A non-nil error is a transport or protocol failure (connection
// refused, non-2xx status, malformed response, spawn failure) and aborts
// the whole run; per-item backend failures are reported via Outcome.
type Dispatcher interface {
	Dispatch(ctx context.Context, req Request) (Outcome, error)
}

// FromConfig builds the dispatcher selected by cfg. Remote mode yields the
// single-endpoint client for one --addr-api URL and the pool for several.
func FromConfig(cfg *config.Config) (Dispatcher, error) {
	if cfg.Mode == config.ModeLocal {
		return NewLocal(cfg.DenoiserPath, cfg.ModelPath), nil
	}
	switch len(cfg.APIAddrs) {
	case 0:
		return nil, errors.New("remote mode needs at least one endpoint")
	case 1:
		return NewRemote(cfg.APIAddrs[0], cfg.Model), nil
	default:
		return NewPool(cfg.APIAddrs, cfg.Model)
	}
}
