package testutil

import (
	"bytes"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"gpark.dev/acs-admin/internal/admin/plate"
)

// ParseHTML parses the provided HTML payload into a goquery document for assertions.
func ParseHTML(t testing.TB, body []byte) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

// PlateDOM parses body and wraps it as a plate.Document.
func PlateDOM(t testing.TB, body []byte) *plate.DOM {
	t.Helper()
	return plate.NewDOM(ParseHTML(t, body))
}
