// Copyright 2026 Opporank Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package storage

import (
	"fmt"

	"github.com/mus-format/mus-go/ord"
	"github.com/opporank/opporank/core"
)

// Postings are stored as mus-go encoded field sequences:
// id | title | location | sorted skill tokens.
var tokensSer = ord.NewSliceSer[string](ord.String)

// MarshalPosting serializes a Posting to bytes.
func MarshalPosting(p *core.Posting) []byte {
	tokens := p.Skills.Tokens()
	size := ord.String.Size(p.ID) +
		ord.String.Size(p.Title) +
		ord.String.Size(p.Location) +
		tokensSer.Size(tokens)

	bs := make([]byte, size)
	n := ord.String.Marshal(p.ID, bs)
	n += ord.String.Marshal(p.Title, bs[n:])
	n += ord.String.Marshal(p.Location, bs[n:])
	tokensSer.Marshal(tokens, bs[n:])
	return bs
}

// UnmarshalPosting deserializes a Posting from bytes.
func UnmarshalPosting(bs []byte) (*core.Posting, error) {
	id, n, err := ord.String.Unmarshal(bs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	title, m, err := ord.String.Unmarshal(bs[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	n += m
	location, m, err := ord.String.Unmarshal(bs[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	n += m
	tokens, _, err := tokensSer.Unmarshal(bs[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}

	return &core.Posting{
		ID:       id,
		Title:    title,
		Location: location,
		Skills:   core.NewSkillSet(tokens...),
	}, nil
}
