package mock

import "github.com/fwojciec/locgen"

var _ locgen.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of locgen.Extractor.
type Extractor struct {
	ExtractFn func(html string) ([]*locgen.ElementInfo, error)
}

func (e *Extractor) Extract(html string) ([]*locgen.ElementInfo, error) {
	return e.ExtractFn(html)
}
