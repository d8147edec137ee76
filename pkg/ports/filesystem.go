package ports

// FileSystem abstracts the file system operations used when exporting frames.
type FileSystem interface {
	// WriteFile writes data to a file, creating or truncating it.
	WriteFile(path string, data []byte) error

	// MkdirAll creates a directory and all missing parents.
	// It is not an error if the directory already exists.
	MkdirAll(path string) error

	// Glob returns the names of all files matching pattern.
	Glob(pattern string) ([]string, error)
}
