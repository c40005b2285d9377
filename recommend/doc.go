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

// Package recommend serves ranked opportunity recommendations.
//
// The Recommender type implements the query pipeline: embed the profile
// text, retrieve a generous candidate pool from the vector index, fuse
// semantic similarity with keyword overlap per candidate, and apply a
// tiered fallback policy that always produces a tagged, explainable
// result when any inventory exists.
//
// Queries run against an immutable Snapshot shared without locking;
// publishing a rebuilt snapshot is an atomic swap.
package recommend
