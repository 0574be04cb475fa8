package store

import (
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slatelog/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Config{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

// put writes raw bytes under the storage key, bypassing Save, to simulate
// blobs written by other versions of the application.
func put(t *testing.T, s *Store, blob []byte) {
	t.Helper()
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(storageKey), blob)
	})
	require.NoError(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)

	projects := []models.Project{{
		ID:   "p1",
		Name: "Pilot",
		ShootLogs: []models.ShootLog{{
			ID: "l1", Name: "Day 1", Date: "2024-03-01", Location: "Stage A",
			Data: []models.SheetRow{{ID: "r1", SlNo: "1", Slate: "SC-1", Lens: "50mm"}},
		}},
		LensPresets:        []string{"50mm"},
		CameraNamePresets:  []string{},
		CameraModelPresets: []string{},
	}}

	s.Save(projects)
	assert.Equal(t, projects, s.Load())
}

func TestLoad_MissingKeyReturnsEmpty(t *testing.T) {
	s := openTestStore(t)

	projects := s.Load()
	assert.NotNil(t, projects)
	assert.Empty(t, projects)
}

func TestLoad_CorruptBlobReturnsEmpty(t *testing.T) {
	s := openTestStore(t)
	put(t, s, []byte("{not json["))

	projects := s.Load()
	assert.NotNil(t, projects)
	assert.Empty(t, projects)
}

func TestLoad_NullBlobReturnsEmpty(t *testing.T) {
	s := openTestStore(t)
	put(t, s, []byte("null"))

	projects := s.Load()
	assert.NotNil(t, projects)
	assert.Empty(t, projects)
}

func TestLoad_NormalizesAbsentOptionalFields(t *testing.T) {
	s := openTestStore(t)
	// A blob from before preset lists existed, with a null row slice.
	put(t, s, []byte(`[{"id":"p1","name":"Legacy","shootLogs":[{"id":"l1","name":"Day 1","date":"2024-01-01","location":"A","data":null}]}]`))

	projects := s.Load()
	require.Len(t, projects, 1)
	assert.NotNil(t, projects[0].LensPresets)
	assert.Empty(t, projects[0].LensPresets)
	assert.NotNil(t, projects[0].CameraNamePresets)
	assert.NotNil(t, projects[0].CameraModelPresets)
	require.Len(t, projects[0].ShootLogs, 1)
	assert.NotNil(t, projects[0].ShootLogs[0].Data)
}

func TestSave_ReplacesPreviousBlob(t *testing.T) {
	s := openTestStore(t)

	s.Save([]models.Project{{ID: "p1", Name: "First", ShootLogs: []models.ShootLog{}, LensPresets: []string{}, CameraNamePresets: []string{}, CameraModelPresets: []string{}}})
	s.Save([]models.Project{})

	assert.Empty(t, s.Load())
}
