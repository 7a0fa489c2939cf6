// Package storage writes extracted tables to disk.
//
// Each table becomes one CSV file, named after the table, inside the output
// directory. Files start with a UTF-8 byte order mark so spreadsheet programs
// pick the right encoding for fighter names with accents. A run summary can be
// stored next to the tables as indented JSON.
package storage
