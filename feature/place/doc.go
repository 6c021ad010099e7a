// Package place creates the places of a universe.
//
// A place is a category visible only to its own role. Players are moved
// between places by swapping that role; roads connect two places.
package place
