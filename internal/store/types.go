package store

import "time"

// File is one cache record: an input path, the sha256 of its content at
// normalization time, and where its normalized form was written.
type File struct {
	ID             int64
	Path           string
	Hash           string
	OutputPath     string
	LastNormalized time.Time
}
