// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package palette

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aymerick/douceur/parser"

	"cogentcore.org/svganim/colors"
	"cogentcore.org/svganim/tree"
)

// JSON returns the JSON serialization of the token table.
func (p *Palette) JSON() ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// Substitute rewrites every fill and stroke value in the document
// whose canonical color matches a palette token to a symbolic
// var(--name) reference, in both attributes and inline style
// declarations.
func Substitute(doc *tree.Document, p *Palette, log *slog.Logger) error {
	return rewrite(doc, log, func(val string) (string, bool) {
		c, ok, err := colors.FromString(val)
		if err != nil || !ok {
			return "", false
		}
		if t, ok := p.ByValue(c.HexString()); ok {
			return "var(--" + t.Name + ")", true
		}
		return "", false
	})
}

// Resolve replaces var(--name) token references in fill and stroke
// values with the token's canonical hex value, undoing
// [Substitute] exactly.
func Resolve(doc *tree.Document, p *Palette, log *slog.Logger) error {
	return rewrite(doc, log, func(val string) (string, bool) {
		name, ok := varName(val)
		if !ok {
			return "", false
		}
		if t, ok := p.ByName(name); ok {
			return t.Value, true
		}
		return "", false
	})
}

func varName(val string) (string, bool) {
	val = strings.TrimSpace(val)
	if !strings.HasPrefix(val, "var(--") || !strings.HasSuffix(val, ")") {
		return "", false
	}
	return val[len("var(--") : len(val)-1], true
}

func rewrite(doc *tree.Document, log *slog.Logger, repl func(string) (string, bool)) error {
	if doc == nil || !doc.Valid(doc.Root) {
		return tree.ErrNoRoot
	}
	if log == nil {
		log = slog.Default()
	}
	doc.WalkDownVisual(doc.Root, func(id tree.NodeID) bool {
		for _, nm := range paintAttrs {
			if v, ok := doc.Attr(id, nm); ok {
				if nv, ok := repl(v); ok {
					doc.SetAttr(id, nm, nv)
				}
			}
		}
		if style, ok := doc.Attr(id, "style"); ok {
			if ns, changed := rewriteStyle(style, repl, log); changed {
				doc.SetAttr(id, "style", ns)
			}
		}
		return true
	})
	return nil
}

// rewriteStyle rebuilds a style attribute with fill/stroke values
// replaced, preserving declaration order.
func rewriteStyle(style string, repl func(string) (string, bool), log *slog.Logger) (string, bool) {
	decls, err := parser.ParseDeclarations(style)
	if err != nil {
		log.Debug("palette: unparseable style attribute", "style", style, "err", err)
		return "", false
	}
	changed := false
	var sb strings.Builder
	for i, decl := range decls {
		val := decl.Value
		if decl.Property == "fill" || decl.Property == "stroke" {
			if nv, ok := repl(val); ok {
				val = nv
				changed = true
			}
		}
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s: %s;", decl.Property, val)
	}
	if !changed {
		return "", false
	}
	return sb.String(), true
}
