// Package client talks to the FinTrack HTTP API and keeps the session token
// on disk between CLI runs.
package client
