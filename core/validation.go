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

package core

import (
	"fmt"
	"strings"
)

// ValidatePosting validates a Posting according to domain rules.
//
// Validation rules:
//   - ID must not be empty
//   - Title must not be empty
//
// NOT validated:
//   - Location (free text, may be empty)
//   - Skills (the empty set is valid and scores 0 against any profile)
func ValidatePosting(p *Posting) error {
	if p == nil {
		return fmt.Errorf("%w: posting is nil", ErrInvalidPosting)
	}
	if p.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidPosting)
	}
	if p.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidPosting)
	}
	if p.Skills == nil {
		return fmt.Errorf("%w: skills must not be nil (empty set is valid)", ErrInvalidPosting)
	}
	return nil
}

// NormalizeProfile returns a copy of the profile with nil skill sets
// replaced by empty sets and the location preference trimmed. Token
// normalization itself is lenient: malformed tokens were already dropped
// by the SkillSet constructors.
func NormalizeProfile(p Profile) Profile {
	if p.Skills == nil {
		p.Skills = NewSkillSet()
	}
	if p.Interests == nil {
		p.Interests = NewSkillSet()
	}
	p.LocationPreference = strings.TrimSpace(p.LocationPreference)
	return p
}
