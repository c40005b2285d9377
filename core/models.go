package core

import (
	"encoding/binary"
	"encoding/hex"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// Posting is a single opportunity posting from the catalog. Postings are
// immutable once loaded into a Store snapshot; a catalog change requires a
// full rebuild of the snapshot and its index.
type Posting struct {
	ID       string
	Title    string
	Location string
	Skills   SkillSet
}

// Profile is a requester's query input. Skills and Interests follow the
// same normalization rules as Posting.Skills.
type Profile struct {
	Skills             SkillSet
	Interests          SkillSet
	LocationPreference string
	WorkFromHomeOnly   bool
}

// PostingText synthesizes the descriptive sentence used as the embedding
// input for a posting. Index build and artifact loaders must use this exact
// template; skew between build-time and query-time text degrades semantic
// scores.
func PostingText(p *Posting) string {
	title := p.Title
	if title == "" {
		title = "an open role"
	}
	skills := "various skills"
	if p.Skills.Len() > 0 {
		skills = strings.Join(p.Skills.Tokens(), ", ")
	}
	return "Seeking a candidate for a " + title + " position requiring skills such as " + skills + "."
}

// ProfileText synthesizes the query-side sentence for a profile. Interests
// are folded into the skill listing.
func ProfileText(p *Profile) string {
	combined := p.Skills.Union(p.Interests)
	skills := "general work"
	if combined.Len() > 0 {
		skills = strings.Join(combined.Tokens(), ", ")
	}
	return "A candidate with key skills in: " + skills + "."
}

// ScoredCandidate is a query-scoped pairing of a posting with its scores.
// SemanticScore is the raw inner product from retrieval (cosine similarity
// for unit vectors, so in [-1, 1]); KeywordScore is Jaccard overlap in
// [0, 1]. RetrievalRank is the candidate's position in the retrieval
// ordering and breaks final-score ties deterministically.
type ScoredCandidate struct {
	Posting       *Posting
	SemanticScore float64
	KeywordScore  float64
	FinalScore    float64
	RetrievalRank int
}

// FingerprintPostings computes a BLAKE2b content fingerprint over postings
// in iteration order. Identical catalogs produce identical fingerprints, so
// artifact loaders can tell which catalog an index was built from.
func FingerprintPostings(postings []*Posting) string {
	h, _ := blake2b.New(16, nil)
	var lenBuf [4]byte
	writeField := func(s string) {
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(s)))
		h.Write(lenBuf[:])
		h.Write([]byte(s))
	}
	for _, p := range postings {
		writeField(p.ID)
		writeField(p.Title)
		writeField(p.Location)
		for _, tok := range p.Skills.Tokens() {
			writeField(tok)
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
