// Package utils provides small conversion helpers shared by the relation engine
// and its collaborators, mainly for turning loosely typed JSON values into ints
// and strings.
package utils
