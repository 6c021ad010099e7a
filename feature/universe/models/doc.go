// Package models defines the persisted universe record.
package models
