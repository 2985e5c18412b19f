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


// Package catalog defines the document repository abstraction over the
// five fixed catalog collections and the binary serialization of
// catalog items.
//
// The matching engine depends only on the Repository interface; the
// catalog/badger sub-package provides the BadgerDB-backed
// implementation, which also derives per-item distances against a
// fixed origin coordinate at fetch time.
package catalog
