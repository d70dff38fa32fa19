// SPDX-License-Identifier: MIT

package ingest

// ReadOption configures the delimited readers.
type ReadOption func(*readOptions)

type readOptions struct {
	delimiter   rune
	header      bool
	genesAsRows bool
	scoreColumn int // -1: no filter
	minScore    float64
}

const (
	// DefaultDelimiter is a tab.
	DefaultDelimiter = '\t'
	commentChar      = '#'
)

func gatherRead(opts ...ReadOption) readOptions {
	o := readOptions{delimiter: DefaultDelimiter, scoreColumn: -1}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithDelimiter sets the field separator (',' for CSV).
func WithDelimiter(r rune) ReadOption {
	return func(o *readOptions) { o.delimiter = r }
}

// WithHeader skips the first non-comment line of an edge list.
func WithHeader(on bool) ReadOption {
	return func(o *readOptions) { o.header = on }
}

// WithGenesAsRows reads an expression table laid out genes × cells.
func WithGenesAsRows(on bool) ReadOption {
	return func(o *readOptions) { o.genesAsRows = on }
}

// WithMinScore keeps only edges whose 0-based column col parses to ≥ min,
// e.g. STRING combined_score.
func WithMinScore(col int, min float64) ReadOption {
	return func(o *readOptions) {
		o.scoreColumn = col
		o.minScore = min
	}
}

// HarmonizeOption configures Harmonize.
type HarmonizeOption func(*harmonizeOptions)

type harmonizeOptions struct {
	artifactPrefixes []string
	largestComponent bool
}

// DefaultArtifactPrefixes are ribosomal and mitochondrial gene stems.
var DefaultArtifactPrefixes = []string{"RPS", "RPL", "MT"}

func gatherHarmonize(opts ...HarmonizeOption) harmonizeOptions {
	o := harmonizeOptions{
		artifactPrefixes: DefaultArtifactPrefixes,
		largestComponent: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithArtifactPrefixes replaces the dropped symbol stems. No arguments keeps
// every gene.
func WithArtifactPrefixes(prefixes ...string) HarmonizeOption {
	return func(o *harmonizeOptions) { o.artifactPrefixes = append([]string(nil), prefixes...) }
}

// WithLargestComponent toggles restriction to the largest connected component.
func WithLargestComponent(on bool) HarmonizeOption {
	return func(o *harmonizeOptions) { o.largestComponent = on }
}
