// Package invoice renders fixed-layout invoice documents.
package invoice

// Line is one labeled value in the document body. A Line with an empty Value
// renders as bare text.
type Line struct {
	Label string
	Value string
}

// Document is the ordered content of a single-page invoice.
type Document struct {
	Header string
	Lines  []Line
}

// Renderer turns a document into a byte stream ready for upload.
type Renderer interface {
	Render(doc Document) ([]byte, error)
}
