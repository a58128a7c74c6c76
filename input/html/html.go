/*
Package html is the HTML front end of the formatter.

It parses an HTML document, applies embedded stylesheet rules and inline
style attributes, and produces the element tree plus the cascaded value
store the layout engine consumes. Selector matching uses cascadia, CSS
parsing uses douceur; specificity handling is simple source order, which
covers the document class this engine targets.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package html

import (
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/parser"
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/npillmayer/cords"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/visfmt/core"
	"github.com/npillmayer/visfmt/engine/dom"
	"github.com/npillmayer/visfmt/engine/dom/style"
	xhtml "golang.org/x/net/html"
)

// tracer traces with key 'visfmt.input'.
func tracer() tracing.Trace {
	return tracing.Select("visfmt.input")
}

// rule is one stylesheet rule with its compiled selector.
type rule struct {
	selText  string
	selector cascadia.Selector
	decls    []declaration
}

type declaration struct {
	property string
	value    string
}

// BuildDocument parses an HTML document and produces the element tree and
// cascaded values for layout. The tree is rooted in the document's body.
func BuildDocument(r io.Reader) (*dom.Tree, *style.Declarations, error) {
	doc, err := xhtml.Parse(r)
	if err != nil {
		return nil, nil, core.WrapError(err, core.EINVALID, "cannot parse HTML document")
	}
	rules := collectRules(doc)
	body := findElement(doc, "body")
	if body == nil {
		return nil, nil, core.Error(core.EMISSING, "document has no body")
	}
	bd := &docBuilder{
		b:     dom.NewBuilder(),
		decls: style.NewDeclarations(),
		rules: rules,
	}
	bd.element(body)
	tree, err := bd.b.Tree()
	if err != nil {
		return nil, nil, err
	}
	tracer().Infof("document yields %d elements, %d style rules", tree.Size(), len(rules))
	return tree, bd.decls, nil
}

// collectRules gathers the rules of all <style> elements in document
// order and compiles their selectors.
func collectRules(doc *xhtml.Node) []rule {
	var rules []rule
	var walk func(n *xhtml.Node)
	walk = func(n *xhtml.Node) {
		if n.Type == xhtml.ElementNode && n.Data == "style" {
			rules = append(rules, parseRules(innerText(n))...)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return rules
}

func parseRules(cssText string) []rule {
	sheet, err := parser.Parse(cssText)
	if err != nil {
		tracer().Errorf("cannot parse stylesheet: %v", err)
		return nil
	}
	var rules []rule
	for _, r := range sheet.Rules {
		var decls []declaration
		for _, d := range r.Declarations {
			decls = append(decls, declaration{property: d.Property, value: d.Value})
		}
		for _, sel := range r.Selectors {
			compiled, err := cascadia.Compile(sel)
			if err != nil {
				tracer().Errorf("cannot compile selector '%s': %v", sel, err)
				continue
			}
			rules = append(rules, rule{selText: sel, selector: compiled, decls: decls})
		}
	}
	return rules
}

func findElement(n *xhtml.Node, name string) *xhtml.Node {
	if n.Type == xhtml.ElementNode && n.Data == name {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if e := findElement(c, name); e != nil {
			return e
		}
	}
	return nil
}

func innerText(n *xhtml.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xhtml.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

// --- Tree building ---------------------------------------------------------

type docBuilder struct {
	b     *dom.Builder
	decls *style.Declarations
	rules []rule
}

func (bd *docBuilder) element(n *xhtml.Node) {
	e := bd.b.Open()
	bd.applyStyles(e, n)
	for c := n.FirstChild; c != nil; {
		switch c.Type {
		case xhtml.TextNode:
			c = bd.textRun(c)
			continue
		case xhtml.ElementNode:
			if elementDisplayClass(c.Data) != skipElement {
				bd.element(c)
			}
		}
		c = c.NextSibling
	}
	bd.b.Close()
}

// textRun merges consecutive text siblings into one text leaf, using a
// cord to assemble the fragments. Returns the first non-text sibling.
func (bd *docBuilder) textRun(first *xhtml.Node) *xhtml.Node {
	cb := cords.NewBuilder()
	c := first
	for c != nil && c.Type == xhtml.TextNode {
		cb.Append(textLeaf(c.Data))
		c = c.NextSibling
	}
	text := cb.Cord().String()
	if strings.TrimSpace(text) != "" {
		bd.b.Text(text)
	}
	return c
}

// textLeaf adapts a text fragment to the cords leaf interface.
type textLeaf string

func (l textLeaf) Weight() uint64 {
	return uint64(len(l))
}

func (l textLeaf) String() string {
	return string(l)
}

func (l textLeaf) Split(i uint64) (cords.Leaf, cords.Leaf) {
	return l[:i], l[i:]
}

func (l textLeaf) Substring(i, j uint64) []byte {
	return []byte(l)[i:j]
}

var _ cords.Leaf = textLeaf("")

// applyStyles collects the winning declarations for one element: the
// tag's default display, then matching stylesheet rules in source order,
// then the inline style attribute. A selector text occurring in more than
// one rule is applied only at its first occurrence.
func (bd *docBuilder) applyStyles(e dom.NodeIndex, n *xhtml.Node) {
	props := make(map[string]string)
	switch elementDisplayClass(n.Data) {
	case inlineElement:
		props["display"] = "inline"
	default:
		props["display"] = "block"
	}
	seen := hashset.New()
	for _, r := range bd.rules {
		if seen.Contains(r.selText) {
			continue
		}
		if r.selector.Match(n) {
			seen.Add(r.selText)
			for _, d := range r.decls {
				props[d.property] = d.value
			}
		}
	}
	for _, attr := range n.Attr {
		if attr.Key != "style" {
			continue
		}
		decls, err := parser.ParseDeclarations(attr.Val)
		if err != nil {
			tracer().Errorf("cannot parse style attribute: %v", err)
			continue
		}
		for _, d := range decls {
			props[d.Property] = d.Value
		}
	}
	setDeclarations(bd.decls, e, props)
}

type displayClass uint8

const (
	blockElement displayClass = iota
	inlineElement
	skipElement
)

// elementDisplayClass returns the user-agent display class for an HTML
// element name.
func elementDisplayClass(name string) displayClass {
	switch name {
	case "span", "a", "b", "i", "em", "strong", "code", "small", "sub", "sup":
		return inlineElement
	case "head", "script", "style", "title", "meta", "link", "template":
		return skipElement
	}
	return blockElement
}
