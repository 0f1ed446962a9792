package data

import (
	"bytes"
	"fmt"
	"os"

	"stylegrid/internal/model"
)

// FileSource reads a local CSV export (same format as the library files).
type FileSource struct {
	Path     string
	Keywords []string
}

func (s *FileSource) Key() string { return "file:" + s.Path }

func (s *FileSource) Describe() string { return fmt.Sprintf("local file %s", s.Path) }

func (s *FileSource) Fetch() (*model.RawTable, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		// A missing or unreadable file is recoverable: the chain can fall
		// through to the remote source.
		return nil, &model.SourceError{
			Source:  s.Key(),
			Message: "read file",
			Err:     err,
		}
	}
	return ParseTable(bytes.NewReader(raw), s.Key(), s.Keywords)
}

// UploadSource normalizes user-supplied bytes, e.g. a dashboard file upload.
type UploadSource struct {
	Name     string // original filename, used for the source key
	Data     []byte
	Keywords []string
}

func (s *UploadSource) Key() string { return "upload:" + s.Name }

func (s *UploadSource) Describe() string { return fmt.Sprintf("uploaded file %s", s.Name) }

func (s *UploadSource) Fetch() (*model.RawTable, error) {
	if len(s.Data) == 0 {
		return nil, &model.SourceError{
			Source:  s.Key(),
			Message: "empty upload",
		}
	}
	return ParseTable(bytes.NewReader(s.Data), s.Key(), s.Keywords)
}
