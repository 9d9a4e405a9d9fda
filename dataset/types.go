package dataset

import (
	"encoding/json"
	"time"

	"github.com/cinegraph/cinegraph/errors"
)

// Genre is a TMDB-style genre reference.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CastMember is one billed cast entry. The upstream downloader caps cast
// arrays to a small fixed size per movie.
type CastMember struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Character string `json:"character,omitempty"`
}

// Keyword is a TMDB-style keyword reference. Absent in reduced datasets.
type Keyword struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MovieRecord is one movie as produced by the downloader. Records are
// immutable once loaded; graph state is derived, never written back.
// Relation arrays may be missing entirely and decode as nil, which every
// consumer treats as empty.
type MovieRecord struct {
	ID          int          `json:"id"`
	Title       string       `json:"title"`
	ReleaseDate string       `json:"release_date,omitempty"`
	Runtime     int          `json:"runtime,omitempty"`
	Genres      []Genre      `json:"genres"`
	Cast        []CastMember `json:"cast"`
	Keywords    []Keyword    `json:"keywords,omitempty"`
}

// Dataset is the JSON envelope shared with the downloader.
type Dataset struct {
	FetchedAt time.Time     `json:"fetched_at"`
	Source    string        `json:"source"`
	Movies    []MovieRecord `json:"movies"`
}

// Parse decodes a dataset from raw JSON bytes. Decode failures are reported
// as ErrInvalidDataset so callers can distinguish a bad file from an
// unavailable source.
func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, errors.WrapInvalidDataset(err, "failed to decode dataset JSON")
	}
	return &ds, nil
}

// Marshal encodes the dataset back to its envelope JSON.
func (ds *Dataset) Marshal() ([]byte, error) {
	data, err := json.Marshal(ds)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode dataset")
	}
	return data, nil
}
