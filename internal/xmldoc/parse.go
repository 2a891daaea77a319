// Package xmldoc reads the XML documentation found in "///" comment blocks.
package xmldoc

import (
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"
)

// Tree maps a tag name to the nodes with that name, in document order.
type Tree map[string][]*Node

// Node is one element of a parsed documentation block.
type Node struct {
	Value    string         `yaml:"value,omitempty"`
	Attr     map[string]any `yaml:"attr,omitempty"`
	Children Tree           `yaml:"children,omitempty"`
}

// First returns the first node named tag, or nil.
func (t Tree) First(tag string) *Node {
	if nodes := t[tag]; len(nodes) > 0 {
		return nodes[0]
	}
	return nil
}

// Parse turns documentation text into a Tree. Leading "///" markers are
// removed and the text is wrapped in a synthetic root element before parsing.
// Attribute names lose their namespace prefix and attribute values that look
// like numbers or booleans are converted. Parse returns nil when the text is
// not well-formed.
func Parse(text string) Tree {
	dec := xml.NewDecoder(strings.NewReader("<root>" + stripMarkers(text) + "</root>"))
	dec.Strict = true

	root, err := decodeElement(dec, nil)
	if err != nil {
		return nil
	}
	// Anything after the synthetic root means the input closed it early.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil
	}
	if root.Children == nil {
		return Tree{}
	}
	return root.Children
}

// decodeElement reads tokens up to the end of the element opened by start.
// A nil start reads the document's single top-level element.
func decodeElement(dec *xml.Decoder, start *xml.StartElement) (*Node, error) {
	node := &Node{}
	if start != nil {
		for _, a := range start.Attr {
			if node.Attr == nil {
				node.Attr = make(map[string]any)
			}
			node.Attr[a.Name.Local] = coerce(a.Value)
		}
	}

	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if start == nil {
				inner := t
				return decodeElement(dec, &inner)
			}
			child, err := decodeElement(dec, &t)
			if err != nil {
				return nil, err
			}
			if node.Children == nil {
				node.Children = make(Tree)
			}
			node.Children[t.Name.Local] = append(node.Children[t.Name.Local], child)
		case xml.EndElement:
			node.Value = strings.TrimSpace(text.String())
			return node, nil
		case xml.CharData:
			if start != nil {
				text.Write(t)
			}
		}
	}
}

func coerce(v string) any {
	if i, err := strconv.ParseInt(v, 10, 64); err == nil {
		return i
	}
	if strings.Trim(v, "+-.0123456789eE") == "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	switch v {
	case "true":
		return true
	case "false":
		return false
	}
	return v
}

func stripMarkers(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r", ""), "\n")
	for i, l := range lines {
		trimmed := strings.TrimLeft(l, " \t")
		if strings.HasPrefix(trimmed, "///") {
			lines[i] = strings.TrimPrefix(strings.TrimPrefix(trimmed, "///"), " ")
		}
	}
	return strings.Join(lines, "\n")
}
