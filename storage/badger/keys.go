package badger

import (
	"encoding/binary"
	"fmt"
)

// Key prefixes for the posting catalog.
const (
	postingOrdinalPrefix = "postord"
	postingIDPrefix      = "postid"
	postingOrdinalSeq    = "postseq"
)

// makeOrdinalKey generates the primary key for a posting by its insertion
// ordinal. Ordinals are BigEndian so lexicographic key order equals
// insertion order, which AllPostings relies on.
func makeOrdinalKey(ordinal uint64) []byte {
	prefix := postingOrdinalPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], ordinal)
	return buf
}

// makeIDKey generates the secondary key mapping a posting ID to its ordinal.
func makeIDKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", postingIDPrefix, id))
}
