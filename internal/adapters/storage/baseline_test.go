package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/sentinel/internal/core/domain"
)

func baselinePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "state", "model_state.json")
}

func TestBaselineLoadMissingIsColdStart(t *testing.T) {
	store := NewFileBaselineStore(baselinePath(t))

	history, err := store.Load()
	require.NoError(t, err)
	assert.True(t, history.Empty())
	assert.Empty(t, history.FeatureNames)
}

func TestBaselineSaveLoadRoundTrip(t *testing.T) {
	store := NewFileBaselineStore(baselinePath(t))

	history := domain.BaselineHistory{
		Vectors:      [][]float64{{1, 2, 3, 4, 5}, {6, 7, 8, 9, 10}},
		FeatureNames: []string{"a", "b", "c", "d", "e"},
	}
	require.NoError(t, store.Save(history))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, history, loaded)
}

func TestBaselineCorruptFileIsColdStart(t *testing.T) {
	path := baselinePath(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	store := NewFileBaselineStore(path)
	history, err := store.Load()
	require.NoError(t, err)
	assert.True(t, history.Empty())
}

func TestBaselineInconsistentFileIsColdStart(t *testing.T) {
	path := baselinePath(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	// Vector length disagrees with the name list.
	require.NoError(t, os.WriteFile(path, []byte(`{"vectors":[[1,2]],"feature_names":["a"]}`), 0644))

	store := NewFileBaselineStore(path)
	history, err := store.Load()
	require.NoError(t, err)
	assert.True(t, history.Empty())
}

func TestBaselineSaveOverwritesWholeState(t *testing.T) {
	store := NewFileBaselineStore(baselinePath(t))

	first := domain.BaselineHistory{Vectors: [][]float64{{1}}, FeatureNames: []string{"a"}}
	require.NoError(t, store.Save(first))

	second := domain.BaselineHistory{Vectors: [][]float64{{2}, {3}}, FeatureNames: []string{"a"}}
	require.NoError(t, store.Save(second))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, second, loaded)
}

func TestBaselineMonotonicGrowth(t *testing.T) {
	store := NewFileBaselineStore(baselinePath(t))

	vec := domain.FeatureVector{Names: []string{"a"}, Values: []float64{1}}
	for i := 1; i <= 5; i++ {
		history, err := store.Load()
		require.NoError(t, err)
		require.NoError(t, history.Append(vec))
		require.NoError(t, store.Save(history))

		reloaded, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, i, reloaded.Len())
	}
}

func TestBaselineSaveLeavesNoTempFile(t *testing.T) {
	path := baselinePath(t)
	store := NewFileBaselineStore(path)
	require.NoError(t, store.Save(domain.BaselineHistory{}))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}
