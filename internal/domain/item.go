package domain

import "time"

// Item is a single video in the library
type Item struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	Filename    string    `json:"filename"`
	Dir         string    `json:"dir"`     // Library-relative directory, "" or ends with "/"
	RootKey     string    `json:"rootKey"` // Which configured root owns the file
	Size        int64     `json:"size"`
	ModTime     time.Time `json:"modTime"`
	Categories  []string  `json:"categories,omitempty"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
}

// Path returns the library-relative path of the item
func (i Item) Path() string {
	return JoinPath(i.Dir, i.Filename)
}

// Fields returns the part of the item that mutations can change
func (i Item) Fields() Fields {
	return Fields{
		DisplayName: i.DisplayName,
		Dir:         i.Dir,
		Filename:    i.Filename,
		RootKey:     i.RootKey,
	}
}

// WithFields returns a copy of the item carrying f
func (i Item) WithFields(f Fields) Item {
	i.DisplayName = f.DisplayName
	i.Dir = f.Dir
	i.Filename = f.Filename
	i.RootKey = f.RootKey
	return i
}

// Location returns where the item currently lives on disk
func (i Item) Location() Location {
	return Location{
		ID:       i.ID,
		RootKey:  i.RootKey,
		Dir:      i.Dir,
		Filename: i.Filename,
	}
}

// Clone returns a deep copy of the item
func (i Item) Clone() Item {
	if i.Categories != nil {
		i.Categories = append([]string(nil), i.Categories...)
	}
	return i
}

// Fields holds the display name and structured location of an item.
// Directory and filename are kept apart so undo never has to split a path.
type Fields struct {
	DisplayName string `json:"displayName"`
	Dir         string `json:"dir"`
	Filename    string `json:"filename"`
	RootKey     string `json:"rootKey"`
}

// Path returns Dir + Filename
func (f Fields) Path() string {
	return JoinPath(f.Dir, f.Filename)
}

// Location identifies a file for the disk port
type Location struct {
	ID       string
	RootKey  string
	Dir      string
	Filename string
}

// Path returns the library-relative path of the location
func (l Location) Path() string {
	return JoinPath(l.Dir, l.Filename)
}

// LocationOf builds the location an item has when it carries f
func LocationOf(id string, f Fields) Location {
	return Location{ID: id, RootKey: f.RootKey, Dir: f.Dir, Filename: f.Filename}
}

// SearchHit is a single match returned by a search index
type SearchHit struct {
	ID    string
	Name  string
	Path  string
	Score float64
}

// SyncStats holds statistics from a scan
type SyncStats struct {
	ItemsAdded   int
	ItemsUpdated int
	ItemsRemoved int
	FilesScanned int
	Duration     time.Duration
}
