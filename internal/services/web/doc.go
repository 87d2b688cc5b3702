// Package web serves the browser UI of the portfolio tracker.
//
// It is a thin layer over the portfolio REST API: pages are rendered on the
// server, the backend owns the session, and every protected page load runs a
// fresh session guard before any content is written.
package web
