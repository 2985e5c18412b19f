// Copyright 2025 Poiesic Systems
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


// Package embedding holds the flat vector type, cosine similarity, and
// the normalization of provider payloads into flat vectors.
//
// Embedding providers disagree about response shape: some return a
// flat numeric sequence, some a nested one, some an object with a
// primary numeric field, and some an opaque object of numeric leaves.
// Shape models that variation as a tagged union with one normalization
// path per tag, so the rest of the system only ever sees a Vector or
// nil.
package embedding
