// Package scraper extracts events and fight results from ufcstats.com pages.
//
// The extractors work on document.Node trees and never fail outright: a missing
// element is replaced by a documented default, and a fight row that cannot be
// read is skipped without affecting the rows after it. Scraper.Run ties them
// together into a single sequential pass over the completed-events listing.
package scraper
