// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package preset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/spotifynd/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.PresetConfig{DBPath: filepath.Join(t.TempDir(), "nested", dbFile)})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// --- Save / Load ---

func TestLoadEmptySlot(t *testing.T) {
	s := testStore(t)
	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = s.Info(context.Background())
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		set  types.FilterSet
	}{
		{
			name: "every feature",
			set: types.FilterSet{
				types.FeaturePitch:         "7",
				types.FeatureTempo:         "120-180",
				types.FeatureDanceability:  "0.2-0.7",
				types.FeatureTimeSignature: "3-4",
				types.FeatureAcousticness:  "0-0.3",
				types.FeatureLiveness:      "0.1-0.9",
				types.FeatureEnergy:        "0.5-1",
				types.FeatureSpeechiness:   "0-0.1",
			},
		},
		{
			name: "subset",
			set:  types.FilterSet{types.FeatureTempo: "90-110", types.FeatureEnergy: "0.8-1"},
		},
		{
			name: "all unset",
			set:  types.FilterSet{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testStore(t)
			ctx := context.Background()

			_, err := s.Save(ctx, tt.set)
			require.NoError(t, err)

			got, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.set, got)
		})
	}
}

func TestSaveOverwritesSlot(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	first, err := s.Save(ctx, types.FilterSet{types.FeaturePitch: "0", types.FeatureTempo: "100-120"})
	require.NoError(t, err)
	second, err := s.Save(ctx, types.FilterSet{types.FeatureEnergy: "0.5-1"})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.FilterSet{types.FeatureEnergy: "0.5-1"}, got)

	var rows int
	require.NoError(t, s.db.QueryRow(`SELECT count(*) FROM preset`).Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestSaveStoresUnsetAsNull(t *testing.T) {
	s := testStore(t)
	_, err := s.Save(context.Background(), types.FilterSet{types.FeatureTempo: "100-120"})
	require.NoError(t, err)

	var tempo, pitch *string
	require.NoError(t, s.db.QueryRow(`SELECT tempo, pitch FROM preset`).Scan(&tempo, &pitch))
	require.NotNil(t, tempo)
	assert.Equal(t, "100-120", *tempo)
	assert.Nil(t, pitch)
}

func TestPresetSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), dbFile)
	ctx := context.Background()

	s, err := NewStore(types.PresetConfig{DBPath: path})
	require.NoError(t, err)
	_, err = s.Save(ctx, types.FilterSet{types.FeatureDanceability: "0.4-0.6"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = NewStore(types.PresetConfig{DBPath: path})
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.FilterSet{types.FeatureDanceability: "0.4-0.6"}, got)
}

// --- Info / Clear ---

func TestInfo(t *testing.T) {
	s := testStore(t)
	fixed := time.Date(2026, 3, 14, 15, 9, 26, 535, time.UTC)
	s.now = func() time.Time { return fixed }

	saved, err := s.Save(context.Background(), types.FilterSet{types.FeaturePitch: "2"})
	require.NoError(t, err)

	info, err := s.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, saved, info)
	assert.Equal(t, fixed.Truncate(time.Second), info.SavedAt)

	_, err = uuid.Parse(info.ID)
	assert.NoError(t, err)
}

func TestClear(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.Clear(ctx), "clearing an empty slot")

	_, err := s.Save(ctx, types.FilterSet{types.FeaturePitch: "2"})
	require.NoError(t, err)
	require.NoError(t, s.Clear(ctx))

	_, err = s.Load(ctx)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

// --- YAML export / import ---

func TestExportImportYAML(t *testing.T) {
	ctx := context.Background()
	src := testStore(t)
	set := types.FilterSet{types.FeatureTempo: "120-180", types.FeaturePitch: "11"}
	saved, err := src.Save(ctx, set)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "preset.yaml")
	require.NoError(t, src.ExportYAML(ctx, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "tempo: 120-180")
	assert.Contains(t, string(data), saved.ID)

	dst := testStore(t)
	imported, err := dst.ImportYAML(ctx, path)
	require.NoError(t, err)
	assert.NotEqual(t, saved.ID, imported.ID)

	got, err := dst.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, set, got)
}

func TestExportEmptySlot(t *testing.T) {
	s := testStore(t)
	err := s.ExportYAML(context.Background(), filepath.Join(t.TempDir(), "preset.yaml"))
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestImportRejectsUnknownFeature(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	_, err := s.Save(ctx, types.FilterSet{types.FeaturePitch: "4"})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "preset.yaml")
	require.NoError(t, os.WriteFile(path, []byte("criteria:\n  loudness: -10-0\n"), 0o644))

	_, err = s.ImportYAML(ctx, path)
	assert.ErrorIs(t, err, types.ErrParse)

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.FilterSet{types.FeaturePitch: "4"}, got)
}

func TestImportRejectsInvalidCriterion(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{"danceability out of domain", "criteria:\n  danceability: \"-0.1-1.2\"\n", types.ErrRange},
		{"malformed tempo", "criteria:\n  tempo: \"fast\"\n", types.ErrParse},
		{"pitch out of range", "criteria:\n  pitch: \"12\"\n", types.ErrParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testStore(t)
			ctx := context.Background()
			_, err := s.Save(ctx, types.FilterSet{types.FeaturePitch: "4"})
			require.NoError(t, err)

			path := filepath.Join(t.TempDir(), "preset.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.doc), 0o644))

			_, err = s.ImportYAML(ctx, path)
			assert.ErrorIs(t, err, tt.wantErr)

			got, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, types.FilterSet{types.FeaturePitch: "4"}, got)
		})
	}
}
