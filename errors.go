package morphdict

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is wrapped by byte sources when a resource does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrLayout: buffer length is not a multiple of the element size.
	ErrLayout = errors.New("buffer layout mismatch")
	// ErrMalformed: assembler rejected the content of a group.
	ErrMalformed = errors.New("malformed dictionary data")
)

// AcquisitionError reports a byte source failure for one resource.
type AcquisitionError struct {
	Group    string
	Resource ResourceID
	Err      error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("acquire %s (group %s): %v", e.Resource, e.Group, e.Err)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }

type LayoutError struct {
	Resource ResourceID
	Type     ElementType
	Len      int
}

func (e *LayoutError) Error() string {
	name := string(e.Resource)
	if name == "" {
		name = "buffer"
	}
	return fmt.Sprintf("%s: %d bytes is not a multiple of %s size %d",
		name, e.Len, e.Type, e.Type.Size())
}

func (e *LayoutError) Is(target error) bool { return target == ErrLayout }

// AssemblyError wraps an error returned by an Assembler for one group.
type AssemblyError struct {
	Group string
	Err   error
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("assemble %s: %v", e.Group, e.Err)
}

func (e *AssemblyError) Unwrap() error { return e.Err }
