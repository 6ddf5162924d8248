package xmlutils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadXMLFile(t *testing.T) {
	t.Run("loads valid XML file", func(t *testing.T) {
		xmlPath := filepath.Join(t.TempDir(), "test.xml")
		err := os.WriteFile(xmlPath, []byte(`<?xml version="1.0"?><root><item>Value1</item></root>`), 0600)
		require.NoError(t, err)

		root, err := LoadXMLFile(xmlPath)
		require.NoError(t, err)
		assert.NotNil(t, root)
	})

	t.Run("returns error for non-existent file", func(t *testing.T) {
		_, err := LoadXMLFile("/non/existent/file.xml")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open XML file")
	})

	t.Run("returns error for invalid XML", func(t *testing.T) {
		xmlPath := filepath.Join(t.TempDir(), "invalid.xml")
		err := os.WriteFile(xmlPath, []byte("<invalid><unclosed>"), 0600)
		require.NoError(t, err)

		_, err = LoadXMLFile(xmlPath)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse XML")
	})
}

func TestNodes(t *testing.T) {
	xmlContent := `<?xml version="1.0" encoding="UTF-8"?>
<root>
	<entry><name>First</name><value>1</value></entry>
	<entry><name>Second</name></entry>
	<entry><name>Third</name><value>3</value></entry>
</root>`
	root, err := ParseXML(strings.NewReader(xmlContent))
	require.NoError(t, err)

	t.Run("returns nodes in document order", func(t *testing.T) {
		nodes, err := Nodes(root, "//entry")
		require.NoError(t, err)
		require.Len(t, nodes, 3)
		assert.Equal(t, "First", StringAt(nodes[0], "name"))
		assert.Equal(t, "Third", StringAt(nodes[2], "name"))
	})

	t.Run("relative lookup stays within its node", func(t *testing.T) {
		// The second entry has no value element; it must not pick up a
		// sibling's.
		nodes, err := Nodes(root, "//entry")
		require.NoError(t, err)
		assert.Equal(t, "1", StringAt(nodes[0], "value"))
		assert.Equal(t, "", StringAt(nodes[1], "value"))
		assert.Equal(t, "3", StringAt(nodes[2], "value"))
	})

	t.Run("returns empty for no matches", func(t *testing.T) {
		nodes, err := Nodes(root, "//nonexistent")
		require.NoError(t, err)
		assert.Empty(t, nodes)
	})

	t.Run("returns error for invalid xpath", func(t *testing.T) {
		_, err := Nodes(root, "[invalid xpath")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to compile XPath")
	})
}

func TestExists(t *testing.T) {
	root, err := ParseXML(strings.NewReader(`<Document><BkToCstmrStmt><Stmt/></BkToCstmrStmt></Document>`))
	require.NoError(t, err)

	assert.True(t, Exists(root, XPathStatement))
	assert.False(t, Exists(root, XPathEntry))
	assert.False(t, Exists(root, "[broken"))
}
