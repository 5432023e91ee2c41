package errors

import "fmt"

// DirectoryNotFoundError is returned when the source or output folder is missing or is not a folder.
type DirectoryNotFoundError struct {
	Path string
	Err  error
}

func (e *DirectoryNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("directory not found: %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("directory not found: %s", e.Path)
}

func (e *DirectoryNotFoundError) Unwrap() error {
	return e.Err
}

func NewDirectoryNotFound(path string, err error) error {
	return &DirectoryNotFoundError{Path: path, Err: err}
}

// InvalidNumericInputError is returned when a volume, chapter or stop value does not parse as a number.
type InvalidNumericInputError struct {
	Field string
	Value string
	Err   error
}

func (e *InvalidNumericInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

func (e *InvalidNumericInputError) Unwrap() error {
	return e.Err
}

func NewInvalidNumericInput(field, value string, err error) error {
	return &InvalidNumericInputError{Field: field, Value: value, Err: err}
}

// UnreadableArchiveError is recorded when a chapter archive, or one of its members, cannot be read.
// Member is empty when the archive itself could not be opened.
type UnreadableArchiveError struct {
	Path   string
	Member string
	Err    error
}

func (e *UnreadableArchiveError) Error() string {
	if e.Member != "" {
		return fmt.Sprintf("unreadable member %s in %s: %v", e.Member, e.Path, e.Err)
	}
	return fmt.Sprintf("unreadable archive %s: %v", e.Path, e.Err)
}

func (e *UnreadableArchiveError) Unwrap() error {
	return e.Err
}

func NewUnreadableArchive(path, member string, err error) error {
	return &UnreadableArchiveError{Path: path, Member: member, Err: err}
}

// PageSkippedError is recorded when page verification leaves a page out of a volume.
type PageSkippedError struct {
	s string
}

func (e *PageSkippedError) Error() string {
	return e.s
}

func NewPageSkipped(text string) error {
	return &PageSkippedError{text}
}

// OutputConflictError is returned when a volume archive would replace a file that was not
// written by a previous merge, such as a chapter named like the volume.
type OutputConflictError struct {
	Path string
}

func (e *OutputConflictError) Error() string {
	return fmt.Sprintf("refusing to overwrite %s: the file is not a bound volume", e.Path)
}

func NewOutputConflict(path string) error {
	return &OutputConflictError{Path: path}
}
