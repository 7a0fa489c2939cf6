package scraper

import (
	"strings"

	"github.com/pfrederiksen/ufcstats/internal/document"
	"github.com/pfrederiksen/ufcstats/internal/logger"
)

const (
	eventsTableSelector = "table.b-statistics__table-events"
	eventLinkSelector   = "a.b-link[href]"
	eventDetailsMarker  = "event-details"
)

// ExtractEventURLs returns the event detail links of the listing page in document
// order, without duplicates. When maxEvents is positive the result is truncated to
// that many links; zero or negative means no limit.
//
// Links are taken from the events table. If the page has no such table the whole
// page is scanned for event links instead.
func ExtractEventURLs(doc document.Node, maxEvents int) []string {
	var anchors []document.Node
	if table := doc.Find(eventsTableSelector); table != nil {
		anchors = table.FindAll(eventLinkSelector)
	} else {
		logger.Warn("Events table not found, scanning page for event links", nil)
		anchors = doc.FindAll(eventLinkSelector)
	}

	seen := make(map[string]bool)
	urls := make([]string, 0, len(anchors))
	for _, a := range anchors {
		href, ok := a.Attr("href")
		if !ok || !strings.Contains(href, eventDetailsMarker) {
			continue
		}
		if seen[href] {
			continue
		}
		seen[href] = true
		urls = append(urls, href)
	}

	if maxEvents > 0 && len(urls) > maxEvents {
		urls = urls[:maxEvents]
	}
	return urls
}
