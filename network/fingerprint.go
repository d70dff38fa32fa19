// SPDX-License-Identifier: MIT

package network

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Fingerprint returns a hex SHA3-256 digest of the gene symbols (in index
// order) and the edge set. Two topologies with equal fingerprints produce
// identical scores for identical expression input, which is what persisted
// runs key on.
//
// Complexity: O(G + E).
func (t *Topology) Fingerprint() string {
	h := sha3.New256()
	var buf [binary.MaxVarintLen64]byte

	n := binary.PutUvarint(buf[:], uint64(len(t.genes)))
	h.Write(buf[:n])
	for _, g := range t.genes {
		n = binary.PutUvarint(buf[:], uint64(len(g)))
		h.Write(buf[:n])
		h.Write([]byte(g))
	}
	for _, e := range t.Edges() {
		n = binary.PutUvarint(buf[:], uint64(e[0]))
		h.Write(buf[:n])
		n = binary.PutUvarint(buf[:], uint64(e[1]))
		h.Write(buf[:n])
	}

	return hex.EncodeToString(h.Sum(nil))
}
