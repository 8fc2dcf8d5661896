package query

// Package query parses episode search terms. A term is either a /regex/
// matched against titles, a boolean expression over episode attributes
// ("new and not video", "size > 100 or age < 7"), or plain words that must
// all appear in the episode or podcast text.
