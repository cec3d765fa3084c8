// Package server provides the HTTP API and dashboard for a product catalog.
//
// This package is internal to the catalog module and handles all HTTP concerns:
//
//   - Dashboard serving: Serves the embedded HTML dashboard at "/"
//   - REST API: list/search/paginate, add, get, edit and delete under "/api/products"
//   - Server-Sent Events: live change notifications at "/api/events"
//
// Every list response is derived from a fresh catalog snapshot. Rows carry
// each product's id and global index; edits and deletions are addressed by
// id, never by a row's position on the page.
//
// The server supports graceful shutdown via context cancellation, with a
// 5-second timeout for in-flight requests.
package server
