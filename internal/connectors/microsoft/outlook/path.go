package outlook

import (
	"strings"
)

// Path is the absolute address of a resource or collection.
// Child paths are always the parent path, a slash and the segment.
type Path string

// String returns the path as a string.
func (p Path) String() string {
	return string(p)
}

// Join appends segment to base.
// Segments are not escaped or validated beyond rejecting the empty segment.
func Join(base Path, segment string) (Path, error) {
	if segment == "" {
		return "", &LocalValidationError{
			Field:  "segment",
			Reason: "path segment must not be empty",
			Err:    ErrInvalidPathSegment,
		}
	}
	return Path(string(base) + "/" + segment), nil
}

// Parent returns the path without its last segment.
func (p Path) Parent() Path {
	i := strings.LastIndex(string(p), "/")
	if i < 0 {
		return ""
	}
	return p[:i]
}

// Last returns the final segment of the path.
func (p Path) Last() string {
	i := strings.LastIndex(string(p), "/")
	if i < 0 {
		return string(p)
	}
	return string(p[i+1:])
}

// mailboxCollection returns the mailbox-level collection of the resource at
// p: /Me/Folders/Inbox/Messages/x gives /Me/Messages and
// /Users/u/Folders/a/ChildFolders/b gives /Users/u/Folders. Paths outside a
// mailbox give their parent.
func (p Path) mailboxCollection() Path {
	parent := p.Parent()
	collection := parent.Last()
	if collection == "ChildFolders" {
		collection = "Folders"
	}

	segs := strings.Split(string(p), "/")
	for i, s := range segs {
		root := 0
		switch {
		case s == "Me":
			root = i + 1
		case s == "Users" && i+1 < len(segs):
			root = i + 2
		}
		if root > 0 {
			return Path(strings.Join(segs[:root], "/") + "/" + collection)
		}
	}
	return parent
}
