package driven

// FileSystem is the file access capability the settings store is built on.
// Paths are the fully resolved settings locations; implementations never
// interpret module scopes.
type FileSystem interface {
	// FileExists reports whether a regular file exists at path.
	FileExists(path string) bool

	// DirectoryExists reports whether a directory exists at path.
	DirectoryExists(path string) bool

	// CreateDirectory creates path and any missing parents.
	CreateDirectory(path string) error

	// DeleteDirectory removes path and everything below it.
	// Removing a directory that does not exist is not an error.
	DeleteDirectory(path string) error

	// ReadAllText returns the whole content of the file at path.
	ReadAllText(path string) (string, error)

	// WriteAllText replaces the whole content of the file at path.
	WriteAllText(path, content string) error
}
