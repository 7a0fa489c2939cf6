// Package event defines the records extracted from ufcstats.com.
//
// An Event is one event detail page. A Fight is one fighter's line of a bout, so
// every bout contributes a pair of Fights sharing the bout details. Numeric-looking
// stats are kept as raw page text; converting them is left to whoever analyses
// the exported tables.
package event
