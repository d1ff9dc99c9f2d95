// Package domain defines the core types and ports for the catalog service
package domain

import str "shelfsearch/internal/platform/strings"

// Work is a literary work independent of any printing
type Work struct {
	ID           string   `json:"id"`
	Title        string   `json:"title" validate:"required"`
	Author       string   `json:"author" validate:"required"`
	CoAuthors    []string `json:"co_authors,omitempty"`
	Series       string   `json:"series,omitempty"`
	SeriesNumber int      `json:"series_number,omitempty" validate:"min=0"`
	Genres       []string `json:"genres,omitempty"`
	Language     string   `json:"language,omitempty"`
	Year         int      `json:"year,omitempty" validate:"omitempty,min=1000,max=3000"`
}

// SearchText is the combined text the fuzzy query runs against
func (w Work) SearchText() string {
	parts := append([]string{w.Title, w.Author}, w.CoAuthors...)
	return str.JoinNonEmpty(append(parts, w.Series)...)
}

// Edition is a specific printing of a work, identified by ISBN
type Edition struct {
	ISBN       string `json:"isbn" validate:"required,isbnlike"`
	WorkID     string `json:"work_id,omitempty"`
	Publisher  string `json:"publisher,omitempty"`
	Collection string `json:"collection,omitempty"`
	Translator string `json:"translator,omitempty"`
	Format     string `json:"format,omitempty" validate:"omitempty,oneof=paperback hardcover pocket ebook audiobook"`
	Language   string `json:"language,omitempty"`
	Year       int    `json:"year,omitempty" validate:"omitempty,min=1000,max=3000"`
	Pages      int    `json:"pages,omitempty" validate:"min=0"`
}

// Digital reports whether the edition has no physical form
func (e Edition) Digital() bool { return e.Format == "ebook" || e.Format == "audiobook" }

// Catalog is the on-disk document: works plus their editions
type Catalog struct {
	Works    []Work    `json:"works"`
	Editions []Edition `json:"editions"`
}

// Stats summarizes a catalog
type Stats struct {
	Works    int `json:"works"`
	Editions int `json:"editions"`
	Authors  int `json:"authors"`
	Series   int `json:"series"`
	Digital  int `json:"digital"`
}
