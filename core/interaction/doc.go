// Package interaction suspends a flow until a user answers an interactive prompt.
//
// The Collector is the meeting point between the HTTP endpoint receiving
// component interactions and the goroutines waiting on them. Each waiter
// registers a filter; an event goes to one accepting waiter or is dropped.
//
// The Gate posts a cancel/continue prompt through platform.Messenger, waits for
// a click from the invoking user in the originating channel, and deletes the
// prompt afterwards, including on timeout.
package interaction
