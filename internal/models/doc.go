// Package models holds the flat records produced by deserializing Spotify
// Web API responses.
//
// Records are created once per request, read by handlers and formatters, and
// discarded when the handler returns. There is no identity or lifecycle
// beyond "fields are present or the deserialization failed"; the only
// relationship is that a [Track] carries a list of artist names.
package models
