package imagemeta

import (
	"errors"
	"fmt"
	"io"
	"sync"

	// Backends register themselves with the registry in init.
	_ "github.com/simonhull/imagemeta/internal/exifread"
	_ "github.com/simonhull/imagemeta/internal/exiftool"

	"github.com/simonhull/imagemeta/internal/registry"
	"github.com/simonhull/imagemeta/internal/tagstore"
)

// DefaultBackend is the backend used when no WithBackend or WithOpener
// option is given.
const DefaultBackend = "exiftool"

// Backends returns the names accepted by WithBackend, sorted.
func Backends() []string {
	return registry.Names()
}

var (
	openersMu sync.Mutex
	openers   = make(map[string]tagstore.Opener)
)

// backendOpener returns the shared opener for a registered backend,
// creating it on first use.
func backendOpener(name string) (tagstore.Opener, error) {
	openersMu.Lock()
	defer openersMu.Unlock()

	if o, ok := openers[name]; ok {
		return o, nil
	}

	factory := registry.Get(name)
	if factory == nil {
		return nil, fmt.Errorf("unknown backend %q (available: %v)", name, registry.Names())
	}

	o, err := factory()
	if err != nil {
		return nil, fmt.Errorf("start backend %s: %w", name, err)
	}
	openers[name] = o
	return o, nil
}

// Shutdown releases the shared backends started by Read and Write,
// such as the exiftool process. Later calls start them again on demand.
func Shutdown() error {
	openersMu.Lock()
	defer openersMu.Unlock()

	var errs []error
	for name, o := range openers {
		if c, ok := o.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close backend %s: %w", name, err))
			}
		}
		delete(openers, name)
	}
	return errors.Join(errs...)
}
