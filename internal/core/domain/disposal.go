package domain

import (
	"fmt"
	"strings"
)

// DisposalPolicy decides what happens to a source file once its stats
// have been saved.
type DisposalPolicy string

const (
	// DisposeArchive moves the file into a dated archive folder.
	DisposeArchive DisposalPolicy = "archive"

	// DisposeDelete removes the file.
	DisposeDelete DisposalPolicy = "delete"
)

// ParseDisposalPolicy parses a policy name, case-insensitively.
func ParseDisposalPolicy(s string) (DisposalPolicy, error) {
	switch p := DisposalPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case DisposeArchive, DisposeDelete:
		return p, nil
	default:
		return "", fmt.Errorf("%w: disposal policy %q (want archive or delete)", ErrInvalidInput, s)
	}
}

func (p DisposalPolicy) verb() string {
	if p == DisposeArchive {
		return "archiving"
	}
	return "deleting"
}
