package plate

import (
	"github.com/PuerkitoBio/goquery"
)

// DOM adapts a parsed HTML document to Document.
type DOM struct {
	root *goquery.Selection
}

// NewDOM wraps a goquery document.
func NewDOM(doc *goquery.Document) *DOM {
	return &DOM{root: doc.Selection}
}

// NewDOMFromSelection scopes lookups to a selection and its descendants.
func NewDOMFromSelection(sel *goquery.Selection) *DOM {
	return &DOM{root: sel}
}

// ElementByID returns the first element whose id attribute equals id exactly.
// Ids are compared literally so widget names need no selector escaping.
func (d *DOM) ElementByID(id string) (Element, bool) {
	match := d.root.Find("[id]").AddSelection(d.root.Filter("[id]")).FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr("id")
		return v == id
	}).First()
	if match.Length() == 0 {
		return nil, false
	}
	return &domElement{sel: match}, true
}

type domElement struct {
	sel *goquery.Selection
}

func (e *domElement) Text() string { return e.sel.Text() }

func (e *domElement) SetText(text string) { e.sel.SetText(text) }

func (e *domElement) ResetClass(base string) { e.sel.SetAttr("class", base) }

func (e *domElement) AddClass(name string) { e.sel.AddClass(name) }

func (e *domElement) HasClass(name string) bool { return e.sel.HasClass(name) }
