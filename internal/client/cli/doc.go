// Package cli implements the interactive FinTrack terminal client.
//
// The client keeps the session token on disk, so a login survives restarts
// until the token expires. Commands map one-to-one onto API calls, except
// summary and project, which are computed locally from the fetched data.
package cli
