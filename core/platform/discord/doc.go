// Package discord implements platform.ResourceAPI and platform.Messenger over the
// Discord REST API.
//
// Each method issues exactly one request (BotRole issues three, the first cached).
// Non-2xx answers become *platform.APIError; a 404 matches platform.ErrNotFound.
// Snowflakes and permission sets travel as decimal strings on the wire.
package discord
