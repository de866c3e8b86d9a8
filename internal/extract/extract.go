// Package extract turns a free-text job-search query into a filter model,
// either with ordered keyword tables or through a remote language model
// with a JSON-only contract.
package extract

import (
	"context"

	"github.com/hyperifyio/gojobsearch/internal/filter"
)

// Extractor derives search filters from a raw query.
type Extractor interface {
	Extract(ctx context.Context, query string) (filter.Model, error)
}
