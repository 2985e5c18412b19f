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


package engine

// Policy holds the scoring knobs applied on top of raw cosine similarity.
type Policy struct {
	// Threshold is the strict lower bound on adjusted similarity.
	// A candidate is kept only when its adjusted score exceeds it.
	Threshold float32

	// CategoryBoost is added when the requested type and the
	// candidate's collection name contain each other.
	CategoryBoost float32

	// ColorBoost is added when the requested color matches the
	// candidate's color attribute.
	ColorBoost float32

	// NearBoost is added when a located candidate lies within the
	// requested (or default) maximum distance from the origin.
	NearBoost float32

	// FarPenalty is subtracted when a located candidate lies beyond
	// the maximum distance.
	FarPenalty float32

	// DefaultMaxDistanceKm is used when the request carries no usable
	// distance attribute.
	DefaultMaxDistanceKm float64
}

// DefaultPolicy returns the standard scoring policy.
func DefaultPolicy() Policy {
	return Policy{
		Threshold:            0.6,
		CategoryBoost:        0.2,
		ColorBoost:           0.15,
		NearBoost:            0.1,
		FarPenalty:           0.05,
		DefaultMaxDistanceKm: 10,
	}
}
