// Package disk provides the local-disk implementation of driven.FileSystem.
//
// Writes go to a uniquely named temporary file in the destination folder
// which is then renamed over the target, so readers see either the old or
// the new content and never a partially written file.
package disk
