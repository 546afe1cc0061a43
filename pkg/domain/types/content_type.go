package types

import "github.com/m-mizutani/goerr/v2"

// ContentTypeID represents the identifier of a content type in the host space
type ContentTypeID string

// Validate checks if the ContentTypeID is valid
func (c ContentTypeID) Validate() error {
	if c == "" {
		return goerr.New("content type ID cannot be empty")
	}
	return nil
}

// String returns the string representation of ContentTypeID
func (c ContentTypeID) String() string {
	return string(c)
}

// EntryID represents the identifier of an entry
type EntryID string

// Validate checks if the EntryID is valid
func (e EntryID) Validate() error {
	if e == "" {
		return goerr.New("entry ID cannot be empty")
	}
	return nil
}

// String returns the string representation of EntryID
func (e EntryID) String() string {
	return string(e)
}
