package models

import "time"

// Movie is the metadata snapshot the UI hands to the favorites layer.
// Field names follow the upstream metadata provider's JSON shape.
type Movie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	PosterPath       string  `json:"poster_path"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	OriginalLanguage string  `json:"original_language"`
	Overview         string  `json:"overview"`
	GenreIDs         []int   `json:"genre_ids"`
}

// FavoriteRecord is a persisted (user, movie) relationship. The movie
// fields are denormalized at add-time and never refreshed afterwards.
// RecordID is the remote document id when the record lives in the remote
// database; it is empty for records stored locally.
type FavoriteRecord struct {
	RecordID         string    `json:"recordId,omitempty"`
	MovieID          int       `json:"id"`
	Title            string    `json:"title"`
	PosterPath       string    `json:"poster_path"`
	ReleaseDate      string    `json:"release_date"`
	VoteAverage      float64   `json:"vote_average"`
	OriginalLanguage string    `json:"original_language"`
	Overview         string    `json:"overview"`
	GenreIDs         []int     `json:"genre_ids"`
	AddedAt          time.Time `json:"addedAt"`
}

// NewFavoriteRecord snapshots a movie into a favorite record stamped with
// the given time.
func NewFavoriteRecord(m Movie, addedAt time.Time) FavoriteRecord {
	return FavoriteRecord{
		MovieID:          m.ID,
		Title:            m.Title,
		PosterPath:       m.PosterPath,
		ReleaseDate:      m.ReleaseDate,
		VoteAverage:      m.VoteAverage,
		OriginalLanguage: m.OriginalLanguage,
		Overview:         m.Overview,
		GenreIDs:         m.GenreIDs,
		AddedAt:          addedAt,
	}
}
