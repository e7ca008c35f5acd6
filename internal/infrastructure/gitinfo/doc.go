// Package gitinfo reads git metadata from a working tree without
// shelling out to the git binary.
package gitinfo
