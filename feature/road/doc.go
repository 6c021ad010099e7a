// Package road connects two places of a universe.
//
// A road is a channel under the roads category that setup provisions, visible
// only to the road's own role, plus a record of the two places and the
// distance between them.
package road
