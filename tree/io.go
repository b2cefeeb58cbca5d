// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// Parse reads XML-formatted SVG input from the given reader and
// returns the parsed document. The decoder is deliberately lenient
// (non-strict, HTML auto-close and entities, charset-aware), but the
// input must contain a root svg element: [ErrNoRoot] otherwise.
func Parse(reader io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(reader)
	decoder.Strict = false
	decoder.AutoClose = xml.HTMLAutoClose
	decoder.Entity = xml.HTMLEntity
	decoder.CharsetReader = charset.NewReaderLabel

	d := &Document{Root: Nil}
	cur := Nil
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("tree.Parse: %w", err)
		}
		switch se := t.(type) {
		case xml.StartElement:
			nm := se.Name.Local
			if d.Root == Nil {
				if nm != "svg" {
					return nil, fmt.Errorf("%w: got %q", ErrNoRoot, nm)
				}
				d.Root = d.New(nm, Nil)
				cur = d.Root
			} else {
				if cur == Nil {
					// content after the root element closed
					return nil, fmt.Errorf("tree.Parse: multiple root elements")
				}
				cur = d.New(nm, cur)
			}
			for _, attr := range se.Attr {
				d.SetAttr(cur, attrName(attr.Name), attr.Value)
			}
		case xml.EndElement:
			if cur != Nil {
				cur = d.nodes[cur].Parent
			}
		case xml.CharData:
			if cur != Nil {
				txt := strings.TrimSpace(string(se))
				if txt != "" {
					d.nodes[cur].Text += txt
				}
			}
		}
	}
	if d.Root == Nil {
		return nil, ErrNoRoot
	}
	return d, nil
}

// ParseString parses the given SVG markup string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

func attrName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	// xmlns declarations come through with the reserved space names
	switch n.Space {
	case "xmlns":
		return "xmlns:" + n.Local
	case "xml":
		return "xml:" + n.Local
	}
	// namespace-prefixed attributes (e.g. xlink:href) keep their prefix
	if i := strings.LastIndexByte(n.Space, '/'); i >= 0 && strings.Contains(n.Space, "xlink") {
		return "xlink:" + n.Local
	}
	return n.Local
}

// WriteXML serializes the document as UTF-8 SVG markup, preserving
// attribute and child order. Empty elements are self-closing.
func (d *Document) WriteXML(w io.Writer) error {
	if d.Root == Nil {
		return ErrNoRoot
	}
	return d.writeElem(w, d.Root)
}

// String returns the serialized SVG markup.
func (d *Document) String() string {
	var sb strings.Builder
	if err := d.WriteXML(&sb); err != nil {
		return ""
	}
	return sb.String()
}

func (d *Document) writeElem(w io.Writer, id NodeID) error {
	e := &d.nodes[id]
	if _, err := fmt.Fprintf(w, "<%s", e.Tag); err != nil {
		return err
	}
	for _, kv := range e.Attrs.Order {
		if _, err := fmt.Fprintf(w, ` %s="%s"`, kv.Key, escapeAttr(kv.Value)); err != nil {
			return err
		}
	}
	if len(e.Children) == 0 && e.Text == "" {
		_, err := io.WriteString(w, "/>")
		return err
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}
	if e.Text != "" {
		if _, err := io.WriteString(w, escapeText(e.Text)); err != nil {
			return err
		}
	}
	for _, c := range e.Children {
		if err := d.writeElem(w, c); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "</%s>", e.Tag)
	return err
}

var attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

func escapeText(s string) string {
	return textEscaper.Replace(s)
}
