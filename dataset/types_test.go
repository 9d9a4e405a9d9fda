package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinegraph/cinegraph/errors"
)

func TestParse(t *testing.T) {
	data := []byte(`{
		"source": "tmdb",
		"fetched_at": "2026-01-15T10:00:00Z",
		"movies": [
			{
				"id": 1,
				"title": "Alpha",
				"release_date": "1999-03-31",
				"runtime": 120,
				"genres": [{"id": 18, "name": "Drama"}],
				"cast": [{"id": 7, "name": "Ada", "character": "Lead"}],
				"keywords": [{"id": 100, "name": "heist"}]
			},
			{"id": 2, "title": "Bare"}
		]
	}`)

	ds, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "tmdb", ds.Source)
	require.Len(t, ds.Movies, 2)

	alpha := ds.Movies[0]
	assert.Equal(t, "Alpha", alpha.Title)
	assert.Equal(t, 120, alpha.Runtime)
	require.Len(t, alpha.Cast, 1)
	assert.Equal(t, "Lead", alpha.Cast[0].Character)

	// Missing relation arrays decode as nil, treated as empty everywhere
	bare := ds.Movies[1]
	assert.Nil(t, bare.Genres)
	assert.Nil(t, bare.Cast)
	assert.Nil(t, bare.Keywords)
	assert.Empty(t, bare.ReleaseDate)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("not json at all"))
	require.Error(t, err)
	assert.True(t, errors.IsInvalidDatasetError(err))
	assert.False(t, errors.IsNoDataError(err), "parse failure must stay distinct from no-data")
}

func TestMarshalRoundTrip(t *testing.T) {
	ds := &Dataset{
		Source: "file",
		Movies: []MovieRecord{{ID: 1, Title: "Alpha", Genres: []Genre{{ID: 18, Name: "Drama"}}}},
	}

	data, err := ds.Marshal()
	require.NoError(t, err)

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, ds.Source, back.Source)
	require.Len(t, back.Movies, 1)
	assert.Equal(t, ds.Movies[0], back.Movies[0])
}
