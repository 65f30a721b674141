// Package utils provides common utility functions for mods-merger.
// It includes helpers for scalar conversion of loosely typed decoded values
// and normalization of relative asset paths.
package utils
