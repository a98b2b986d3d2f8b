package service

import (
	"fmt"
	"io"
	"path"
	"strings"
	"time"
	"unicode"

	"clinicapi/internal/model"
)

// UploadFile is one file of an upload request. Reader is consumed once.
type UploadFile struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// storedName replaces whitespace with underscores and drops any directory part.
func storedName(original string) string {
	base := path.Base(strings.ReplaceAll(original, `\`, "/"))
	if base == "." || base == "/" {
		base = "file"
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, base)
}

// documentKey is the storage key, and the recorded path, of a stored file.
func documentKey(patientID int64, name string) string {
	return fmt.Sprintf("%d/%s", patientID, name)
}

func uploadDate(t time.Time) string {
	return t.UTC().Format(model.DateLayout)
}
