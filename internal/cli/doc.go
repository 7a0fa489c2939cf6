// Package cli implements the ufcstats command-line interface.
//
// The root command loads configuration from the environment (and an optional
// .env file), lets flags override it, runs the scraper, writes the event and
// fight tables as CSV, and prints a run summary as text tables or JSON. Logs go
// to stderr so the summary on stdout can be piped.
package cli
