package fulfillment

import (
	"github.com/pkg/errors"

	"github.com/storeops/fulfillment/internal/domain"
)

// Registry maps each product type to its handler. It is built once at
// startup and never mutated afterwards. Unknown types fall back to the
// NORMAL handler, so a NORMAL registration is mandatory.
type Registry struct {
	handlers map[string]ProductHandler
}

// NewRegistry builds a registry from the given handlers. It fails when
// no handler covers NORMAL products, since without the fallback the
// registry cannot express any fulfillment policy.
func NewRegistry(handlers ...ProductHandler) (*Registry, error) {
	m := make(map[string]ProductHandler, len(handlers))
	for _, h := range handlers {
		m[h.Type()] = h
	}
	if _, ok := m[domain.ProductTypeNormal]; !ok {
		return nil, errors.New("register a handler for NORMAL products")
	}
	return &Registry{handlers: m}, nil
}

// Resolve returns the handler for the given product type, falling back
// to the NORMAL handler for unknown types.
func (r *Registry) Resolve(productType string) ProductHandler {
	if h, ok := r.handlers[productType]; ok {
		return h
	}
	return r.handlers[domain.ProductTypeNormal]
}
