// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Feature names an audio feature that can be filtered on.
type Feature string

const (
	FeaturePitch         Feature = "pitch"
	FeatureTempo         Feature = "tempo"
	FeatureDanceability  Feature = "danceability"
	FeatureTimeSignature Feature = "time_signature"
	FeatureAcousticness  Feature = "acousticness"
	FeatureLiveness      Feature = "liveness"
	FeatureEnergy        Feature = "energy"
	FeatureSpeechiness   Feature = "speechiness"
)

// AllFeatures lists every filterable feature in display order.
var AllFeatures = []Feature{
	FeaturePitch,
	FeatureTempo,
	FeatureDanceability,
	FeatureTimeSignature,
	FeatureAcousticness,
	FeatureLiveness,
	FeatureEnergy,
	FeatureSpeechiness,
}

// Criterion is a string-encoded bound: a single value ("7") or a range
// ("120-180"). The empty string means unset.
type Criterion string

// IsSet reports whether the criterion carries a value.
func (c Criterion) IsSet() bool { return c != "" }

// FilterSet maps features to criteria. Only set criteria are stored; a
// feature absent from the map is unset. A saved FilterSet is a preset.
type FilterSet map[Feature]Criterion

// Get returns the criterion for f, or "" when unset.
func (s FilterSet) Get(f Feature) Criterion {
	return s[f]
}

// Set stores c under f, deleting the entry when c is empty.
func (s FilterSet) Set(f Feature, c Criterion) {
	if !c.IsSet() {
		delete(s, f)
		return
	}
	s[f] = c
}

// IsEmpty reports whether no criterion is set.
func (s FilterSet) IsEmpty() bool {
	for _, c := range s {
		if c.IsSet() {
			return false
		}
	}
	return true
}

// Active returns the set features in AllFeatures order.
func (s FilterSet) Active() []Feature {
	var out []Feature
	for _, f := range AllFeatures {
		if s.Get(f).IsSet() {
			out = append(out, f)
		}
	}
	return out
}
