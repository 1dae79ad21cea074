package htmlutil

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// TrimText returns the node's text with surrounding whitespace removed.
func TrimText(node *html.Node) string {
	return strings.TrimSpace(GetText(node))
}

// FlattenText returns the node's text trimmed and with line breaks removed,
// for cells that wrap a single value across multiple lines.
func FlattenText(node *html.Node) string {
	text := strings.TrimSpace(GetText(node))
	text = strings.ReplaceAll(text, "\n", "")
	return strings.ReplaceAll(text, "\r", "")
}
