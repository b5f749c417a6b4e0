// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/spotifynd/internal/catalog/catalogtest"
	"github.com/pdiddy/spotifynd/pkg/types"
)

// --- test helpers ---

// wonderYears populates two artists matching "The Wonder Years" with three
// and two top tracks, tempos spread around the 120-180 band.
func wonderYears() *catalogtest.Fake {
	fake := catalogtest.New()
	fake.SearchResults["artist:The Wonder Years"] = []string{"a1", "a2"}

	tempos := map[string]float64{"w1": 110, "w2": 120, "w3": 150, "w4": 180, "w5": 181.5}
	for id, tempo := range tempos {
		fake.AddTrack(id, "Song "+id, "The Wonder Years", &types.AudioFeatures{Tempo: tempo})
	}
	fake.TopTracks["a1"] = []string{"w1", "w2", "w3"}
	fake.TopTracks["a2"] = []string{"w4", "w5"}
	return fake
}

func comeOutSwinging() *catalogtest.Fake {
	fake := catalogtest.New()
	var ids []string
	for i := 0; i < 4; i++ {
		id := fmt.Sprintf("c%d", i)
		fake.AddTrack(id, "Came Out Swinging", "The Wonder Years", &types.AudioFeatures{Tempo: 160, Key: i})
		ids = append(ids, id)
	}
	fake.SearchResults["track:Came Out Swinging"] = ids
	return fake
}

// --- Kind ---

func TestQueryKind(t *testing.T) {
	tests := []struct {
		name     string
		q        Query
		wantKind types.SearchKind
		wantName string
		wantErr  error
	}{
		{"artist wins over song", Query{Artist: "A", Song: "S"}, types.KindArtist, "A", nil},
		{"song only", Query{Song: "S"}, types.KindTrack, "S", nil},
		{"criteria only searches with empty name", Query{Criteria: types.FilterSet{types.FeatureTempo: "1-2"}}, types.KindTrack, "", nil},
		{"nothing", Query{}, 0, "", types.ErrMissingQuery},
		{"unset criteria only", Query{Criteria: types.FilterSet{}}, 0, "", types.ErrMissingQuery},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, name, err := tt.q.Kind()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

// --- Run ---

func TestRunSongWithoutFilters(t *testing.T) {
	fake := comeOutSwinging()
	var buf bytes.Buffer

	got, err := New(fake, types.SearchConfig{}, &buf).Run(context.Background(), Query{Song: "Came Out Swinging"})
	require.NoError(t, err)

	require.Len(t, got, 4)
	for i, m := range got {
		assert.Equal(t, fmt.Sprintf("c%d", i), m.ID)
		assert.Empty(t, m.Annotations)
	}
	assert.Equal(t, []string{
		"search track:Came Out Swinging 50",
		"tracks c0,c1,c2,c3",
		"features c0,c1,c2,c3",
	}, fake.Calls)
	assert.Contains(t, buf.String(), "Number of results: 4")
}

func TestRunArtistWithTempo(t *testing.T) {
	fake := wonderYears()
	q := Query{Artist: "The Wonder Years", Criteria: types.FilterSet{types.FeatureTempo: "120-180"}}

	got, err := New(fake, types.SearchConfig{}, nil).Run(context.Background(), q)
	require.NoError(t, err)

	// Record count is the sum of top-track counts across resolved artists.
	require.Len(t, got, 5)

	var ids []string
	for _, m := range got {
		ids = append(ids, m.ID)
		if a, ok := m.Annotation(types.FeatureTempo); ok {
			assert.GreaterOrEqual(t, a.Value, 120.0, m.ID)
			assert.LessOrEqual(t, a.Value, 180.0, m.ID)
		}
	}
	assert.Equal(t, []string{"w1", "w2", "w3", "w4", "w5"}, ids)

	_, ok := got[0].Annotation(types.FeatureTempo)
	assert.False(t, ok, "110 BPM is below the range")
	_, ok = got[4].Annotation(types.FeatureTempo)
	assert.False(t, ok, "181.5 BPM is above the range")

	assert.Equal(t, []string{
		"search artist:The Wonder Years 10",
		"top-tracks a1",
		"tracks w1,w2,w3",
		"features w1,w2,w3",
		"top-tracks a2",
		"tracks w4,w5",
		"features w4,w5",
	}, fake.Calls)
}

func TestRunArtistExcludeUnmatched(t *testing.T) {
	fake := wonderYears()
	q := Query{Artist: "The Wonder Years", Criteria: types.FilterSet{types.FeatureTempo: "120-180"}}

	got, err := New(fake, types.SearchConfig{ExcludeUnmatched: true}, nil).Run(context.Background(), q)
	require.NoError(t, err)

	var ids []string
	for _, m := range got {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"w2", "w3", "w4"}, ids)
}

func TestRunMissingQueryMakesNoCalls(t *testing.T) {
	fake := wonderYears()
	_, err := New(fake, types.SearchConfig{}, nil).Run(context.Background(), Query{})
	assert.ErrorIs(t, err, types.ErrMissingQuery)
	assert.Empty(t, fake.Calls)
}

func TestRunBadCriterionMakesNoCalls(t *testing.T) {
	fake := wonderYears()
	q := Query{Artist: "The Wonder Years", Criteria: types.FilterSet{types.FeatureDanceability: "-0.1-1.2"}}

	_, err := New(fake, types.SearchConfig{}, nil).Run(context.Background(), q)
	assert.ErrorIs(t, err, types.ErrRange)
	assert.Empty(t, fake.Calls)
}

func TestRunNotFound(t *testing.T) {
	fake := catalogtest.New()
	_, err := New(fake, types.SearchConfig{}, nil).Run(context.Background(), Query{Artist: "Nobody"})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestRunArtistFailurePropagates(t *testing.T) {
	boom := errors.New("connection reset")
	fake := wonderYears()
	fake.TopTracksErr["a2"] = boom

	got, err := New(fake, types.SearchConfig{}, nil).Run(context.Background(), Query{Artist: "The Wonder Years"})
	assert.Same(t, boom, err)
	assert.Nil(t, got, "no partial results")
}

func TestRunArtistWithoutTopTracks(t *testing.T) {
	fake := wonderYears()
	fake.TopTracks["a1"] = nil
	var buf bytes.Buffer

	got, err := New(fake, types.SearchConfig{}, &buf).Run(context.Background(), Query{Artist: "The Wonder Years"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "w4", got[0].ID)
	assert.Equal(t, []string{
		"search artist:The Wonder Years 10",
		"top-tracks a1",
		"top-tracks a2",
		"tracks w4,w5",
		"features w4,w5",
	}, fake.Calls)
	assert.Contains(t, buf.String(), "artist a1 has no top tracks")
}

func TestRunEnrichFailurePropagates(t *testing.T) {
	fake := comeOutSwinging()
	fake.DropLastFeature = true

	_, err := New(fake, types.SearchConfig{}, nil).Run(context.Background(), Query{Song: "Came Out Swinging"})
	assert.ErrorIs(t, err, types.ErrInconsistentResponse)
}
