// Package resource resolves resource file names against an application base path.
package resource

import (
	"errors"
	"strings"
)

// ErrEmptyFile is returned when no resource file name is given.
var ErrEmptyFile = errors.New("resource file is empty")

// Reference is a resolved resource address.
type Reference struct {
	Base    string
	File    string
	Address string
}

func (r Reference) String() string {
	return r.Address
}

// Scheme returns the address scheme, or "" for plain paths.
func (r Reference) Scheme() string {
	return Scheme(r.Address)
}

// Scheme returns the lower-cased scheme of address, or "" when it has none.
func Scheme(address string) string {
	i := strings.Index(address, "://")
	if i <= 0 {
		return ""
	}
	return strings.ToLower(address[:i])
}

// Base resolves file names against a fixed prefix.
type Base struct {
	prefix string
}

// NewBase returns a resolver for prefix. An empty prefix leaves names untouched.
func NewBase(prefix string) Base {
	return Base{prefix: prefix}
}

// Prefix returns the configured base prefix.
func (b Base) Prefix() string {
	return b.prefix
}

// Resolve joins the base prefix and file with a single slash.
// A file that already carries a scheme is used as is.
func (b Base) Resolve(file string) (Reference, error) {
	if file == "" {
		return Reference{}, ErrEmptyFile
	}
	ref := Reference{Base: b.prefix, File: file}
	switch {
	case Scheme(file) != "":
		ref.Address = file
	case b.prefix == "":
		ref.Address = file
	default:
		ref.Address = strings.TrimRight(b.prefix, "/") + "/" + strings.TrimLeft(file, "/")
	}
	return ref, nil
}
