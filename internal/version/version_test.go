package version_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"releasetrain/internal/version"
)

func TestParse(t *testing.T) {
	v, err := version.Parse("5.6.0-RC1")
	require.NoError(t, err)
	assert.Equal(t, uint64(6), v.Minor())
	assert.Equal(t, "RC1", v.Prerelease())

	_, err = version.Parse("five")
	assert.Error(t, err)
}

func TestBase(t *testing.T) {
	assert.Equal(t, "1.1.0", version.Base("1.1.0-SNAPSHOT"))
	assert.Equal(t, "1.1.0", version.Base("1.1.0"))
}

func TestIsPreRelease(t *testing.T) {
	assert.True(t, version.IsPreRelease("5.6.0-M1"))
	assert.True(t, version.IsPreRelease("5.6.0-RC1"))
	assert.False(t, version.IsPreRelease("5.6.0"))
	assert.False(t, version.IsPreRelease("5.6.3"))
}

func TestIsMinorRelease(t *testing.T) {
	assert.True(t, version.IsMinorRelease("5.6.0"))
	assert.True(t, version.IsMinorRelease("6.0.0"))
	assert.False(t, version.IsMinorRelease("5.6.1"))
	assert.False(t, version.IsMinorRelease("5.6.0-M1"))
}

func TestCompare(t *testing.T) {
	assert.Equal(t, -1, version.Compare("1.0.0-M1", "1.0.0-M2"))
	assert.Equal(t, -1, version.Compare("1.0.0-RC1", "1.0.0"))
	assert.Equal(t, 1, version.Compare("1.1.0", "1.0.9"))
	assert.Equal(t, 0, version.Compare("1.0.0", "1.0.0"))
}

func TestNextSnapshot(t *testing.T) {
	tests := map[string]string{
		"6.1.0-M1":       "6.1.0-SNAPSHOT",
		"6.1.0-RC1":      "6.1.0-SNAPSHOT",
		"6.1.0":          "6.1.1-SNAPSHOT",
		"6.0.9":          "6.0.10-SNAPSHOT",
		"6.1.1-SNAPSHOT": "6.1.1-SNAPSHOT",
	}
	for in, want := range tests {
		got, err := version.NextSnapshot(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := version.NextSnapshot("six")
	assert.Error(t, err)
}
