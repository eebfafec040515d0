// Package cli provides the interactive storefront client.
//
// It wires configuration, the encrypted local store, the backend client and
// the services, then runs a REPL that stands in for the app's screens. The
// REPL shows a signed-out command set (register, login) or a signed-in one
// (catalog, favorites, profile) depending on session events from the session
// manager. A background watcher pings the backend and reports connectivity.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
