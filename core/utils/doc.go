// Package utils provides value conversion helpers shared by the HTTP handlers,
// chiefly parsing platform snowflake ids that arrive as strings or numbers.
package utils
