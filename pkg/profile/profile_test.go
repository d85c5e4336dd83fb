package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Denizmerty/RenameUtility/pkg/pattern"
	"github.com/Denizmerty/RenameUtility/pkg/plan"
)

func sampleParams() plan.InputParams {
	return plan.InputParams{
		Mode:            pattern.ModeDirectoryScan,
		TargetDirectory: "/photos",
		NamingPattern:   "pic_<num><ext>",
		FilenamePattern: "img_*",
		Increment:       1,
		RecursiveScan:   true,
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Save("photos", sampleParams()))

	loaded, err := store.Load("photos")
	require.NoError(t, err)
	assert.Equal(t, sampleParams(), loaded)
}

func TestSaveOverwritesExisting(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Save("p", sampleParams()))

	updated := sampleParams()
	updated.Increment = 5
	require.NoError(t, store.Save("p", updated))

	loaded, err := store.Load("p")
	require.NoError(t, err)
	assert.Equal(t, 5, loaded.Increment)
}

func TestLoadMissingProfile(t *testing.T) {
	store := NewStore(t.TempDir())
	_, err := store.Load("nope")
	assert.ErrorContains(t, err, "profile not found")
}

func TestListSorted(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Save("zeta", sampleParams()))
	require.NoError(t, store.Save("alpha", sampleParams()))

	names, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, names)
}

func TestListEmptyStore(t *testing.T) {
	store := NewStore(t.TempDir())
	names, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestDelete(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Save("gone", sampleParams()))
	require.NoError(t, store.Delete("gone"))

	_, err := store.Load("gone")
	assert.Error(t, err)

	assert.Error(t, store.Delete("gone"))
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("photos"))
	assert.NoError(t, ValidateName("batch2"))

	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName("   "))
	assert.Error(t, ValidateName("a/b"))
	assert.Error(t, ValidateName(`a\b`))
	assert.Error(t, ValidateName("12345"))
}
