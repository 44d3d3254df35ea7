package sources

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/custodia-labs/siria/internal/logger"
)

// ParseDocument parses an HTML page.
func ParseDocument(body []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// ExtractItems runs parse on every element of items. A parse error or panic
// in one item is logged and the item skipped; the rest carry on.
func ExtractItems(organization string, items *goquery.Selection, parse func(*goquery.Selection) (RawEvent, error)) []RawEvent {
	raws := make([]RawEvent, 0, items.Length())
	items.Each(func(i int, item *goquery.Selection) {
		raw, err := guard(item, parse)
		if err != nil {
			logger.Warn("%s: skipping item %d: %v", organization, i, err)
			return
		}
		raws = append(raws, raw)
	})
	return raws
}

func guard(item *goquery.Selection, parse func(*goquery.Selection) (RawEvent, error)) (raw RawEvent, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return parse(item)
}

// Text returns the trimmed text of the first match of selector within s.
func Text(s *goquery.Selection, selector string) string {
	return strings.TrimSpace(s.Find(selector).First().Text())
}

// DateText returns the datetime attribute of the first match of selector,
// falling back to its text.
func DateText(s *goquery.Selection, selector string) string {
	el := s.Find(selector).First()
	if dt, ok := el.Attr("datetime"); ok && strings.TrimSpace(dt) != "" {
		return strings.TrimSpace(dt)
	}
	return strings.TrimSpace(el.Text())
}

// Href returns the href of the first match of selector that carries one.
func Href(s *goquery.Selection, selector string) string {
	var href string
	s.Find(selector).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if v, ok := a.Attr("href"); ok && strings.TrimSpace(v) != "" {
			href = v
			return false
		}
		return true
	})
	return href
}

// FindByClass returns the first descendant whose tag is one of tags and
// whose class attribute matches pattern.
func FindByClass(s *goquery.Selection, tags string, pattern *regexp.Regexp) *goquery.Selection {
	return s.Find(tags).FilterFunction(func(_ int, el *goquery.Selection) bool {
		class, _ := el.Attr("class")
		return pattern.MatchString(class)
	}).First()
}

// FilterByClass keeps the elements of sel whose class attribute matches pattern.
func FilterByClass(sel *goquery.Selection, pattern *regexp.Regexp) *goquery.Selection {
	return sel.FilterFunction(func(_ int, el *goquery.Selection) bool {
		class, _ := el.Attr("class")
		return pattern.MatchString(class)
	})
}
