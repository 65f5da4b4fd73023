package foldericon

import "fmt"

// DecodeError records a source image that could not be read or decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError is returned by Converter.Encode for any failure. Op is one of
// "decode", "cache", "create", "encode" or "close" and Path is the file the
// operation was acting on.
type EncodeError struct {
	Op   string
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("foldericon: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
