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

import "errors"

// Error taxonomy shared across the engine. Each condition a caller may need
// to react to maps to a distinct sentinel, so the serving layer can choose
// an appropriate status code instead of seeing a bare generic failure.
var (
	// ErrBuildFailed indicates the embedding provider failed during index
	// construction. The build is aborted as a whole; partial artifacts are
	// never published.
	ErrBuildFailed = errors.New("index build failed")

	// ErrIndexCorrupt indicates the index and id-map artifacts disagree on
	// cardinality (or an artifact is unreadable). Fatal at load time; the
	// pair must not be served.
	ErrIndexCorrupt = errors.New("index artifact corrupt")

	// ErrIndexDesync indicates a search result position could not be
	// resolved through the id map or the posting store. Fatal for the
	// query; never skipped silently, since skipping could mask corruption.
	ErrIndexDesync = errors.New("index and id map out of sync")

	// ErrProviderTimeout indicates a query-time embedding call exceeded its
	// deadline. Recoverable from the caller's perspective: try again.
	ErrProviderTimeout = errors.New("embedding provider timed out")

	// ErrProviderUnavailable indicates a query-time embedding call failed
	// for a reason other than a timeout.
	ErrProviderUnavailable = errors.New("embedding provider unavailable")

	// ErrInvalidCatalogRow indicates a catalog row is missing a required
	// column or otherwise failed validation during ingestion.
	ErrInvalidCatalogRow = errors.New("invalid catalog row")

	// ErrInvalidPosting indicates a Posting failed validation.
	ErrInvalidPosting = errors.New("invalid posting")
)
