package cli

import (
	"github.com/finchql/finch/internal/commerce"
	"github.com/finchql/finch/internal/registry"
)

// loadRegistry returns the registry selected by --specs: the built-in
// commerce registry when unset, otherwise the CUE directory bound to the
// built-in dialect implementations.
func loadRegistry(opts *RootOptions) (*registry.Registry, error) {
	if opts.Specs == "" {
		return commerce.DefaultRegistry(), nil
	}
	reg, err := registry.LoadDir(opts.Specs, commerce.Binder{})
	if err != nil {
		return nil, &ExitError{Code: ExitCommandError, Message: "loading registry specs", Err: err}
	}
	return reg, nil
}
