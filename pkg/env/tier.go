// Copyright 2025 walteh LLC
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

package env

// 🚦 Tier classifies an environment by its position in the collection:
// first is safe, last is critical, everything between is caution. A
// single-entry collection is safe.
type Tier int

const (
	TierSafe Tier = iota
	TierCaution
	TierCritical
)

// 📝 String returns the lowercase tier name.
func (t Tier) String() string {
	switch t {
	case TierSafe:
		return "safe"
	case TierCaution:
		return "caution"
	case TierCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// 🏷️ Icon returns the icon classification for the tier.
func (t Tier) Icon() string {
	switch t {
	case TierCaution:
		return "flask"
	case TierCritical:
		return "rocket"
	default:
		return "desktop"
	}
}

// ✨ Glyph returns the console glyph rendered next to an environment name.
func (t Tier) Glyph() string {
	switch t {
	case TierCaution:
		return "🧪"
	case TierCritical:
		return "🚀"
	default:
		return "🖥️"
	}
}

// 🎯 Classify derives the tier from a position and the collection size.
func Classify(position, totalCount int) Tier {
	switch {
	case totalCount == 1:
		return TierSafe
	case position == 0:
		return TierSafe
	case position == totalCount-1:
		return TierCritical
	default:
		return TierCaution
	}
}

// 🔎 ClassifyName classifies the named environment within its collection.
// Names absent from the collection fall back to the safe tier.
func ClassifyName(col *Collection, displayName string) Tier {
	e, ok := col.Lookup(displayName)
	if !ok {
		return TierSafe
	}
	return Classify(e.Position, col.TotalCount)
}
