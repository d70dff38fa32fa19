// SPDX-License-Identifier: MIT

package ingest

import (
	"context"
	"fmt"

	"github.com/katalvlaran/scent/network"
)

// GraphClient is the read side of a graph database session.
type GraphClient interface {
	ExecuteRead(ctx context.Context, cypher string, params map[string]any) (Result, error)
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// Result is a fully consumed query response.
type Result struct {
	Records []Record
}

// Record maps column names to values.
type Record map[string]any

// GraphOptions configures NewNeo4jClient.
type GraphOptions struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
}

// DefaultEdgeQuery returns each undirected interaction once as string columns
// "a" and "b".
const DefaultEdgeQuery = `MATCH (a:Gene)-[:INTERACTS_WITH]-(b:Gene)
WHERE elementId(a) < elementId(b)
RETURN a.symbol AS a, b.symbol AS b`

// LoadEdges runs query (DefaultEdgeQuery when empty) and converts its "a"/"b"
// columns into edges.
func LoadEdges(ctx context.Context, c GraphClient, query string, params map[string]any) ([]network.Edge, error) {
	if query == "" {
		query = DefaultEdgeQuery
	}
	res, err := c.ExecuteRead(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("LoadEdges: %w", err)
	}
	edges := make([]network.Edge, 0, len(res.Records))
	for i, rec := range res.Records {
		a, okA := rec["a"].(string)
		b, okB := rec["b"].(string)
		if !okA || !okB || a == "" || b == "" {
			return nil, fmt.Errorf("LoadEdges: record %d: %w", i, ErrUnexpectedRecord)
		}
		edges = append(edges, network.Edge{A: a, B: b})
	}

	return edges, nil
}
