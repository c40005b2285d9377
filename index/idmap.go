package index

import (
	"fmt"

	"github.com/opporank/opporank/core"
)

// IDMap is the bijection between index-internal positions and stable
// posting identifiers. It is built alongside the index and persisted with
// it; the pair is only valid together.
type IDMap []string

// Resolve maps a position returned by the index to a posting ID. An
// unresolvable position is a hard error: silently skipping it could mask
// index/map corruption.
func (m IDMap) Resolve(pos int) (string, error) {
	if pos < 0 || pos >= len(m) {
		return "", fmt.Errorf("%w: position %d outside id map of size %d",
			core.ErrIndexDesync, pos, len(m))
	}
	return m[pos], nil
}

// Len returns the number of mapped positions.
func (m IDMap) Len() int {
	return len(m)
}
