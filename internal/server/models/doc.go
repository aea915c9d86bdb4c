// Package models defines server-side data models persisted by the
// repositories and the public views derived from them.
package models
