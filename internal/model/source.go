// Package model defines the data structures shared by the scanner, the
// attribute matcher and the report writers.
package model

import (
	"path/filepath"
	"strings"
)

// Path represents a file system path.
type Path string

// Base returns the last element of the path.
func (p Path) Base() string {
	return filepath.Base(string(p))
}

// Ext returns the file name extension of the path.
func (p Path) Ext() string {
	return filepath.Ext(string(p))
}

// ScanRequest is created once per user-triggered scan and never modified.
type ScanRequest struct {
	Root            Path
	ApplicationName string
}

// CodeFile represents an eligible source file discovered under a scan root.
type CodeFile struct {
	Path      Path
	Extension string
	Language  string
}

// languages maps supported extensions to display names.
var languages = map[string]string{
	".py":         "Python",
	".java":       "Java",
	".js":         "JavaScript",
	".ts":         "TypeScript",
	".cs":         "C#",
	".php":        "PHP",
	".rb":         "Ruby",
	".xsd":        "XSD",
	".xml":        "XML",
	".properties": "Properties",
}

// LanguageFor returns the display name for an extension, or the upper-cased
// extension when it is not a known one.
func LanguageFor(ext string) string {
	if name, ok := languages[strings.ToLower(ext)]; ok {
		return name
	}

	return strings.ToUpper(strings.TrimPrefix(ext, "."))
}

// NewCodeFile builds a CodeFile for path, deriving extension and language.
func NewCodeFile(path Path) CodeFile {
	ext := path.Ext()

	return CodeFile{
		Path:      path,
		Extension: ext,
		Language:  LanguageFor(ext),
	}
}
