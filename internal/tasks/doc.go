// Package tasks coordinates multi-request operations on top of the services
// layer.
//
// The [TasteEngine] is the only coordinator: it issues the top-artists and
// top-tracks requests concurrently, joins them before returning, and applies
// a [rate.Limiter] so CLI loops and the web server stay inside Spotify's
// request budget. Genre filtering and aggregation helpers live here because
// both the HTTP handlers and the CLI need them.
package tasks
