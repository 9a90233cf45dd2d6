package outlook

import (
	"strings"
)

// OData type discriminators of the attachment variants.
const (
	ODataFileAttachment = "#Microsoft.OutlookServices.FileAttachment"
	ODataItemAttachment = "#Microsoft.OutlookServices.ItemAttachment"
	ODataMessage        = "#Microsoft.OutlookServices.Message"
)

// AttachmentKind is the concrete variant of an attachment.
type AttachmentKind int

const (
	// AttachmentKindGeneric is an attachment whose type is absent or unknown.
	AttachmentKindGeneric AttachmentKind = iota
	// AttachmentKindFile is a file attachment.
	AttachmentKindFile
	// AttachmentKindItem is an attached message or event.
	AttachmentKindItem
)

// String returns the kind name.
func (k AttachmentKind) String() string {
	switch k {
	case AttachmentKindFile:
		return "file"
	case AttachmentKindItem:
		return "item"
	default:
		return "generic"
	}
}

// ResolveAttachmentKind maps an @odata.type value to an attachment kind.
// Only the name after the last '.' is compared, ignoring case, so both the
// namespaced and the bare form resolve. Anything else is generic.
func ResolveAttachmentKind(odataType string) AttachmentKind {
	name := strings.TrimPrefix(odataType, "#")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	switch {
	case strings.EqualFold(name, "FileAttachment"):
		return AttachmentKindFile
	case strings.EqualFold(name, "ItemAttachment"):
		return AttachmentKindItem
	default:
		return AttachmentKindGeneric
	}
}
