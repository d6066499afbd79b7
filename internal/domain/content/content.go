// Package content defines the archive content kinds.
package content

// Type is a content kind stored in the archive.
type Type string

const (
	// TypeImage is a photo or scanned picture.
	TypeImage Type = "image"
	// TypeDocument is a text document.
	TypeDocument Type = "document"
	// TypePDF is an uploaded PDF file.
	TypePDF Type = "pdf"
)

// IsValid reports whether t is a known content kind.
func (t Type) IsValid() bool {
	switch t {
	case TypeImage, TypeDocument, TypePDF:
		return true
	}
	return false
}
