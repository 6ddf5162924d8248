// Package xmlutils wraps the xmlpath queries used by the camt.053 statement
// reader.
package xmlutils

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	xmlpath "gopkg.in/xmlpath.v2"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// LoadXMLFile parses the XML document at path and returns its root node.
func LoadXMLFile(path string) (*xmlpath.Node, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open XML file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	return ParseXML(file)
}

// ParseXML parses an XML document from r and returns its root node.
func ParseXML(r io.Reader) (*xmlpath.Node, error) {
	root, err := xmlpath.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	return root, nil
}

// Nodes returns every node matching the XPath expression, in document order.
func Nodes(root *xmlpath.Node, xpath string) ([]*xmlpath.Node, error) {
	path, err := xmlpath.Compile(xpath)
	if err != nil {
		return nil, fmt.Errorf("failed to compile XPath: %w", err)
	}

	var nodes []*xmlpath.Node
	iter := path.Iter(root)
	for iter.Next() {
		nodes = append(nodes, iter.Node())
	}
	return nodes, nil
}

// StringAt evaluates a relative XPath expression against a context node and
// returns the first match, or "" when the element is absent. The expression
// must be valid; field paths are package constants, not input.
func StringAt(node *xmlpath.Node, relpath string) string {
	value, ok := xmlpath.MustCompile(relpath).String(node)
	if !ok {
		return ""
	}
	return value
}

// Exists reports whether the XPath expression matches anything in the
// document.
func Exists(root *xmlpath.Node, xpath string) bool {
	path, err := xmlpath.Compile(xpath)
	if err != nil {
		return false
	}
	return path.Iter(root).Next()
}
