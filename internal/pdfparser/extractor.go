package pdfparser

import (
	"fmt"
	"os"
	"os/exec"
)

// PDFExtractor extracts the text content of a PDF file. The indirection
// keeps the parser testable without pdftotext installed.
type PDFExtractor interface {
	// ExtractText returns the text content of the PDF at the given path.
	ExtractText(pdfPath string) (string, error)
}

// RealPDFExtractor shells out to the pdftotext command. Layout mode is
// required: the statement's money columns are only distinguishable by their
// horizontal position.
type RealPDFExtractor struct{}

// NewRealPDFExtractor creates a pdftotext-backed extractor.
func NewRealPDFExtractor() *RealPDFExtractor {
	return &RealPDFExtractor{}
}

// ExtractText extracts text from a PDF file using the pdftotext command.
func (e *RealPDFExtractor) ExtractText(pdfPath string) (string, error) {
	tempFile := pdfPath + ".txt"

	cmd := exec.Command("pdftotext", "-layout", pdfPath, tempFile)
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("error running pdftotext: %w", err)
	}

	output, err := os.ReadFile(tempFile) // #nosec G304 -- path derived from caller input
	if err != nil {
		return "", fmt.Errorf("error reading extracted text: %w", err)
	}

	if err := os.Remove(tempFile); err != nil {
		return "", fmt.Errorf("error removing extracted text: %w", err)
	}

	return string(output), nil
}

// MockPDFExtractor returns predefined text instead of reading a PDF.
type MockPDFExtractor struct {
	MockText string
	MockErr  error
}

// NewMockPDFExtractor creates a MockPDFExtractor with the given mock data.
func NewMockPDFExtractor(mockText string, mockErr error) *MockPDFExtractor {
	return &MockPDFExtractor{MockText: mockText, MockErr: mockErr}
}

// ExtractText returns the predefined mock text or error.
func (e *MockPDFExtractor) ExtractText(pdfPath string) (string, error) {
	if e.MockErr != nil {
		return "", e.MockErr
	}
	return e.MockText, nil
}
