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

package catalog

import "errors"

var (
	// ErrDuplicatePosting is returned when two catalog rows share an ID.
	ErrDuplicatePosting = errors.New("duplicate posting id")

	// ErrMissingColumn is returned when a configured column is absent from
	// the source header.
	ErrMissingColumn = errors.New("configured column not found in header")
)
