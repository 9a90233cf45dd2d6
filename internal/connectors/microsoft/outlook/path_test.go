package outlook

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoin(t *testing.T) {
	tests := []struct {
		base     Path
		segment  string
		expected Path
	}{
		{base: "https://outlook.office.com/api/v1.0", segment: "Me", expected: "https://outlook.office.com/api/v1.0/Me"},
		{base: "root/Me", segment: "Folders/Inbox", expected: "root/Me/Folders/Inbox"},
		{base: "", segment: "x", expected: "/x"},
		{base: "a", segment: "id with space", expected: "a/id with space"},
		{base: "a/", segment: "../b", expected: "a//../b"},
		{base: "a", segment: "x?y#z", expected: "a/x?y#z"},
	}

	for _, tt := range tests {
		t.Run(string(tt.expected), func(t *testing.T) {
			p, err := Join(tt.base, tt.segment)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p)
			assert.Equal(t, string(tt.base)+"/"+tt.segment, p.String())
		})
	}
}

func TestJoin_EmptySegment(t *testing.T) {
	_, err := Join("root", "")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPathSegment))
	var localErr *LocalValidationError
	assert.True(t, errors.As(err, &localErr))
}

func TestPath_ParentAndLast(t *testing.T) {
	p := Path("root/Me/Messages/abc")

	assert.Equal(t, Path("root/Me/Messages"), p.Parent())
	assert.Equal(t, "abc", p.Last())
	assert.Equal(t, Path(""), Path("single").Parent())
	assert.Equal(t, "single", Path("single").Last())
}

func TestPath_MailboxCollection(t *testing.T) {
	tests := []struct {
		path     Path
		expected Path
	}{
		{path: "/Me/Folders/Inbox/Messages/m1", expected: "/Me/Messages"},
		{path: "/Me/Messages/m1", expected: "/Me/Messages"},
		{path: "/Me/Folders/a/ChildFolders/b", expected: "/Me/Folders"},
		{path: "/Users/u@example.com/Folders/Inbox/Messages/m1", expected: "/Users/u@example.com/Messages"},
		{path: "https://outlook.office.com/api/v1.0/Me/Folders/f1", expected: "https://outlook.office.com/api/v1.0/Me/Folders"},
		{path: "root/Things/t1", expected: "root/Things"},
	}

	for _, tt := range tests {
		t.Run(string(tt.path), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.path.mailboxCollection())
		})
	}
}
