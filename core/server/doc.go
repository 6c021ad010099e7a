// Package server holds the HTTP server configuration.
//
// The start command owns the Fiber application lifecycle; this package only
// defines the settings it reads (listen port, API key, shutdown timeout) and
// validates them before the listener is opened.
package server
