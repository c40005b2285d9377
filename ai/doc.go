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

// Package ai defines the embedding capability consumed by the index builder
// and the query path.
//
// The engine treats text embedding as an opaque capability: how a string
// becomes a vector is not this module's concern. The Embedder interface is
// the only contract; its lifecycle is owned by the caller's composition
// root, never by implicit global state.
//
// Two implementation sub-packages are provided:
//
//   - ai/openai: production implementation for OpenAI-compatible APIs
//   - ai/mock: deterministic test double without external dependencies
//
// Public constructors return the ai.Embedder interface to enforce
// abstraction; mock constructors return concrete types so tests can inject
// behavior and make assertions.
package ai
