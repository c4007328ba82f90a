// Package models contains the data models for the shortener application.
package models

// Entry is a single shortened URL. Its position in the store
// is its short code.
type Entry struct {
	// URL is the original submitted URL, stored verbatim.
	URL string `json:"url"`
}
