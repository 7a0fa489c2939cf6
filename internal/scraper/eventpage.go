package scraper

import (
	"strings"

	"github.com/pfrederiksen/ufcstats/internal/document"
	"github.com/pfrederiksen/ufcstats/internal/event"
)

const (
	titleSelector    = "h2.b-content__title"
	infoListSelector = "ul.b-list__box-list"
	infoItemSelector = "li.b-list__box-list-item"
	datePrefix       = "date:"
)

// ExtractEvent reads the event name and date from an event detail page.
func ExtractEvent(doc document.Node, sourceURL string) *event.Event {
	name := extractText(doc.Find(titleSelector), event.NameNotFound)
	return event.NewEvent(name, sourceURL, extractDate(doc))
}

// extractDate returns the value of the first "Date:" item of the event info list.
func extractDate(doc document.Node) string {
	list := doc.Find(infoListSelector)
	if list == nil {
		return event.DateNotFound
	}

	for _, item := range list.FindAll(infoItemSelector) {
		text := collapseSpaces(item.Text())
		if len(text) >= len(datePrefix) && strings.EqualFold(text[:len(datePrefix)], datePrefix) {
			return strings.TrimSpace(text[len(datePrefix):])
		}
	}
	return event.DateNotFound
}
