// Package xmlnav provides namespace-insensitive navigation over a generic
// XML tree. Banks ship the same CAMT schema under many namespace variants
// (different prefixes, different URIs, sometimes none at all), so every
// lookup here matches only the local element or attribute name and ignores
// whatever namespace binding is in effect.
//
// The package deliberately exposes just children, attributes and text. The
// extractor never needs XPath or schema awareness, and keeping the surface
// this small decouples it from the underlying parser.
package xmlnav

import (
	"strings"

	"github.com/beevik/etree"
)

// Child returns the first direct child of p with the given local name, or
// nil. Children are scanned in document order.
func Child(p *etree.Element, name string) *etree.Element {
	if p == nil {
		return nil
	}
	for _, c := range p.ChildElements() {
		if c.Tag == name {
			return c
		}
	}
	return nil
}

// Desc returns the first descendant of p with the given local name, found by
// a depth-first walk in document order, or nil. p itself is not considered.
func Desc(p *etree.Element, name string) *etree.Element {
	if p == nil {
		return nil
	}
	for _, c := range p.ChildElements() {
		if c.Tag == name {
			return c
		}
		if found := Desc(c, name); found != nil {
			return found
		}
	}
	return nil
}

// DescAny returns the first descendant of p whose local name is any of the
// given names, depth-first in document order. Unlike calling Desc per name,
// a later-listed name earlier in the document wins.
func DescAny(p *etree.Element, names ...string) *etree.Element {
	if p == nil {
		return nil
	}
	for _, c := range p.ChildElements() {
		for _, n := range names {
			if c.Tag == n {
				return c
			}
		}
		if found := DescAny(c, names...); found != nil {
			return found
		}
	}
	return nil
}

// Children returns all direct children of p with the given local name, in
// document order.
func Children(p *etree.Element, name string) []*etree.Element {
	if p == nil {
		return nil
	}
	var out []*etree.Element
	for _, c := range p.ChildElements() {
		if c.Tag == name {
			out = append(out, c)
		}
	}
	return out
}

// Text returns the trimmed character data of n, or "" for nil.
func Text(n *etree.Element) string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(n.Text())
}

// ChildText returns the trimmed text of the first direct child with the
// given local name, or "".
func ChildText(p *etree.Element, name string) string {
	return Text(Child(p, name))
}

// DescText returns the trimmed text of the first descendant with the given
// local name, or "".
func DescText(p *etree.Element, name string) string {
	return Text(Desc(p, name))
}

// Attr returns the value of the attribute with the given local name, or "".
func Attr(n *etree.Element, name string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Value
		}
	}
	return ""
}
