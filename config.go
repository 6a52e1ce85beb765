package linemax

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variables read by EnvOverlay.
const (
	EnvWorkers    = "LINEMAX_WORKERS"
	EnvSource     = "LINEMAX_SOURCE"
	EnvStrategy   = "LINEMAX_STRATEGY"
	EnvPrefetch   = "LINEMAX_PREFETCH"
	EnvReadBuffer = "LINEMAX_READ_BUFFER"
)

// LoadOptionsFile decodes a JSON options file on top of base. Fields absent
// from the file keep the value they have in base. A missing file is a
// configuration error, not an I/O one: the caller asked for it explicitly.
func LoadOptionsFile(path string, base Options) (Options, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return base, fmt.Errorf("%w: config file %s does not exist", ErrConfig, path)
		}
		return base, fmt.Errorf("%w: open config file: %v", ErrConfig, err)
	}
	defer f.Close()

	opts := base
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		return base, fmt.Errorf("%w: decode config %s: %v", ErrConfig, path, err)
	}
	return opts, nil
}

// EnvOverlay applies LINEMAX_* variables from environ (KEY=VALUE pairs, as
// returned by os.Environ) on top of base. Empty values are ignored.
func EnvOverlay(environ []string, base Options) (Options, error) {
	opts := base
	for _, kv := range environ {
		key, val, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		val = strings.TrimSpace(val)
		if val == "" {
			continue
		}
		switch key {
		case EnvWorkers:
			n, err := strconv.Atoi(val)
			if err != nil {
				return base, fmt.Errorf("%w: %s=%q is not an integer", ErrConfig, key, val)
			}
			opts.Workers = n
		case EnvSource:
			opts.Source = SourceKind(strings.ToLower(val))
		case EnvStrategy:
			opts.Strategy = Strategy(strings.ToLower(val))
		case EnvPrefetch:
			b, err := strconv.ParseBool(val)
			if err != nil {
				return base, fmt.Errorf("%w: %s=%q is not a boolean", ErrConfig, key, val)
			}
			opts.Prefetch = b
		case EnvReadBuffer:
			n, err := strconv.Atoi(val)
			if err != nil {
				return base, fmt.Errorf("%w: %s=%q is not an integer", ErrConfig, key, val)
			}
			opts.ReadBufferSize = n
		}
	}
	return opts, nil
}
