// Package scraper provides HTTP fetching and HTML extraction for course
// registration events.
//
// The scraper fetches the configured listing page, locates registration
// link nodes with a configured CSS selector, and resolves each candidate's
// title and date by walking enclosing ancestors. Extraction failures are
// recovered per candidate; the fetch itself is fatal to the run.
package scraper
