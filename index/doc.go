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

// Package index implements the flat inner-product vector index, the
// position-to-ID map, and the persisted artifact pair.
//
// The index holds one unit-normalized vector per posting, inserted in
// posting-store iteration order at build time. Position is the join key
// with the IDMap, so insertion is strictly sequential; after build the
// index is an immutable snapshot that any number of queries may search
// concurrently without locking.
//
// Search is an exhaustive inner-product scan. Over unit vectors the inner
// product equals cosine similarity, so no renormalization happens at query
// time.
//
// The persisted form is a pair of files, written together and loaded
// together. The index file declares its similarity metric and vector
// dimension; the id-map file carries the position-to-ID table. Loaders
// reject a pair whose cardinalities or catalog fingerprints disagree.
package index
