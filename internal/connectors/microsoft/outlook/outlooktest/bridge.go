// Package outlooktest provides an in-memory RemoteBridge for exercising the
// outlook resource client without a network.
package outlooktest

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/outlook-services/internal/connectors/microsoft"
	"github.com/custodia-labs/outlook-services/internal/connectors/microsoft/outlook"
	"github.com/custodia-labs/outlook-services/internal/core/ports/driven"
)

// ServiceRoot is the service root the fake reports in error URLs.
const ServiceRoot = "https://outlook.test/api/v1.0"

// Well-known folders seeded below /Me/Folders, keyed by alias.
var wellKnownFolders = map[string]string{
	outlook.FolderInbox:        "Inbox",
	outlook.FolderDrafts:       "Drafts",
	outlook.FolderSentItems:    "Sent Items",
	outlook.FolderDeletedItems: "Deleted Items",
}

// Bridge is an in-memory mailbox addressed by resource path.
// Documents are listed in insertion order.
type Bridge struct {
	mu       sync.Mutex
	docs     map[string]map[string]any
	order    []string
	hidden   map[string]bool
	calls    []driven.Call
	failNext []error
}

var _ driven.RemoteBridge = (*Bridge)(nil)

// NewBridge returns a fake seeded with the signed-in user, the primary
// calendar and the well-known mail folders.
func NewBridge() *Bridge {
	b := &Bridge{
		docs:   make(map[string]map[string]any),
		hidden: make(map[string]bool),
	}
	b.Put("/Me", map[string]any{
		"Id":          uuid.NewString(),
		"DisplayName": "Test User",
		"Alias":       "test",
		"MailboxGuid": uuid.NewString(),
	})
	b.Put("/Me/Calendar", map[string]any{"Id": "Calendar", "Name": "Calendar"})
	b.Put("/Me/Folders/"+outlook.FolderRootFolder, map[string]any{
		"Id":          outlook.FolderRootFolder,
		"DisplayName": "Top of Information Store",
	})
	b.hidden["/Me/Folders/"+outlook.FolderRootFolder] = true
	for _, alias := range []string{
		outlook.FolderInbox, outlook.FolderDrafts, outlook.FolderSentItems, outlook.FolderDeletedItems,
	} {
		b.Put("/Me/Folders/"+alias, map[string]any{
			"Id":             alias,
			"ParentFolderId": outlook.FolderRootFolder,
			"DisplayName":    wellKnownFolders[alias],
		})
	}
	return b
}

// Put stores doc at path, replacing any existing document.
func (b *Bridge) Put(path string, doc map[string]any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.put(path, doc)
}

// Get returns a copy of the document at path.
func (b *Bridge) Get(path string) (map[string]any, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	doc, ok := b.docs[path]
	if !ok {
		return nil, false
	}
	return maps.Clone(doc), true
}

// Calls returns every call received so far, oldest first.
func (b *Bridge) Calls() []driven.Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.calls)
}

// CallCount returns the number of calls received so far.
func (b *Bridge) CallCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

// LastCall returns the most recent call.
func (b *Bridge) LastCall() (driven.Call, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.calls) == 0 {
		return driven.Call{}, false
	}
	return b.calls[len(b.calls)-1], true
}

// FailNext makes the next call return err verbatim. Queued errors are
// consumed in order.
func (b *Bridge) FailNext(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failNext = append(b.failNext, err)
}

// Execute runs one operation against the in-memory documents.
func (b *Bridge) Execute(ctx context.Context, call driven.Call) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	call.Payload = slices.Clone(call.Payload)
	b.calls = append(b.calls, call)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(b.failNext) > 0 {
		err := b.failNext[0]
		b.failNext = b.failNext[1:]
		return nil, err
	}
	if call.Token == "" {
		return nil, b.serviceError(http.StatusUnauthorized, "InvalidAuthenticationToken", "Access token is empty.", call.Path)
	}

	call.Path = b.resolve(call.Path)
	op, ok := outlook.LookupOperation(call.Operation)
	if !ok {
		return nil, b.serviceError(http.StatusBadRequest, "ErrorInvalidRequest", "unknown operation "+call.Operation, call.Path)
	}

	switch op.Kind {
	case outlook.OpRead:
		return b.read(call)
	case outlook.OpList:
		return b.list(call)
	case outlook.OpCreate:
		return b.create(call)
	case outlook.OpUpdate:
		return b.update(call)
	case outlook.OpDelete:
		return b.remove(call)
	case outlook.OpAction:
		return b.action(op, call)
	default:
		return nil, fmt.Errorf("outlooktest: unsupported operation kind %s", op.Kind)
	}
}

func (b *Bridge) read(call driven.Call) ([]byte, error) {
	if call.Operation == "getAttachmentItem" {
		parent := parentPath(call.Path)
		doc, ok := b.docs[parent]
		if !ok {
			return nil, b.notFound(call.Path)
		}
		item, ok := doc["Item"].(map[string]any)
		if !ok {
			return nil, b.notFound(call.Path)
		}
		return json.Marshal(item)
	}

	doc, ok := b.docs[call.Path]
	if !ok {
		return nil, b.notFound(call.Path)
	}
	return json.Marshal(doc)
}

func (b *Bridge) list(call driven.Call) ([]byte, error) {
	var payload string
	if len(call.Payload) > 0 {
		payload = call.Payload[0]
	}
	opts, err := outlook.DecodeQueryPayload(payload)
	if err != nil {
		return nil, b.serviceError(http.StatusBadRequest, "ErrorInvalidRequest", err.Error(), call.Path)
	}

	var match func(map[string]any) bool
	if opts.Filter != nil && *opts.Filter != "" {
		match, err = compileFilter(*opts.Filter)
		if err != nil {
			return nil, b.serviceError(http.StatusBadRequest, "ErrorInvalidUrlQueryFilter", err.Error(), call.Path)
		}
	}

	value := make([]map[string]any, 0)
	for _, p := range b.order {
		if b.hidden[p] || parentPath(p) != call.Path {
			continue
		}
		doc := b.docs[p]
		if match != nil && !match(doc) {
			continue
		}
		value = append(value, doc)
	}

	if opts.Skip != nil && *opts.Skip > 0 {
		value = value[min(*opts.Skip, len(value)):]
	}
	if opts.Top != nil && *opts.Top >= 0 && *opts.Top < len(value) {
		value = value[:*opts.Top]
	}
	if opts.Select != nil && *opts.Select != "" {
		value = project(value, *opts.Select)
	}

	return json.Marshal(map[string]any{"value": value})
}

func (b *Bridge) create(call driven.Call) ([]byte, error) {
	doc, err := decodeDoc(call.Payload)
	if err != nil {
		return nil, b.serviceError(http.StatusBadRequest, "ErrorInvalidRequest", err.Error(), call.Path)
	}
	id := uuid.NewString()
	doc["Id"] = id
	doc["ChangeKey"] = uuid.NewString()
	b.put(call.Path+"/"+id, doc)
	return json.Marshal(doc)
}

func (b *Bridge) update(call driven.Call) ([]byte, error) {
	doc, ok := b.docs[call.Path]
	if !ok {
		return nil, b.notFound(call.Path)
	}
	patch, err := decodeDoc(call.Payload)
	if err != nil {
		return nil, b.serviceError(http.StatusBadRequest, "ErrorInvalidRequest", err.Error(), call.Path)
	}
	for k, v := range patch {
		if k == "Id" {
			continue
		}
		doc[k] = v
	}
	doc["ChangeKey"] = uuid.NewString()
	return json.Marshal(doc)
}

func (b *Bridge) remove(call driven.Call) ([]byte, error) {
	if _, ok := b.docs[call.Path]; !ok {
		return nil, b.notFound(call.Path)
	}
	b.deleteTree(call.Path)
	return nil, nil
}

func (b *Bridge) action(op outlook.Operation, call driven.Call) ([]byte, error) {
	base := call.Path
	doc, ok := b.docs[base]
	if !ok {
		return nil, b.notFound(base)
	}

	body, err := op.ActionRequestBody(call.Payload)
	if err != nil {
		return nil, b.serviceError(http.StatusBadRequest, "ErrorInvalidRequest", err.Error(), call.Path)
	}
	args := map[string]any{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &args); err != nil {
			return nil, b.serviceError(http.StatusBadRequest, "ErrorInvalidRequest", err.Error(), call.Path)
		}
	}

	switch op.Action {
	case "copy", "move":
		dest, _ := args["DestinationId"].(string)
		if dest == "" {
			return nil, b.serviceError(http.StatusBadRequest, "ErrorInvalidIdMalformed", "DestinationId is required.", call.Path)
		}
		moved := maps.Clone(doc)
		id := uuid.NewString()
		moved["Id"] = id
		moved["ParentFolderId"] = dest
		b.put(b.destination(base, dest)+"/"+id, moved)
		if op.Action == "move" {
			b.deleteTree(base)
		}
		return json.Marshal(moved)

	case "createreply", "createreplyall", "createforward":
		prefix := "RE: "
		if op.Action == "createforward" {
			prefix = "FW: "
		}
		subject, _ := doc["Subject"].(string)
		draft := map[string]any{
			"Id":      uuid.NewString(),
			"Subject": prefix + subject,
			"IsDraft": true,
		}
		if from, ok := doc["From"]; ok && op.Action != "createforward" {
			draft["ToRecipients"] = []any{from}
		}
		b.put(parentPath(base)+"/"+draft["Id"].(string), draft)
		return json.Marshal(draft)

	case "send":
		doc["IsDraft"] = false
		return nil, nil

	case "accept":
		doc["ResponseStatus"] = map[string]any{"Response": "Accepted"}
		return nil, nil

	case "decline":
		doc["ResponseStatus"] = map[string]any{"Response": "Declined"}
		return nil, nil

	case "tentativelyaccept":
		doc["ResponseStatus"] = map[string]any{"Response": "TentativelyAccepted"}
		return nil, nil

	default:
		// reply, replyall and forward have no visible effect on the mailbox.
		return nil, nil
	}
}

// resolve maps mailbox-level addresses such as /Me/Messages/<id> and
// /Me/Folders/<id> to the path the document is stored at.
func (b *Bridge) resolve(path string) string {
	segs := strings.Split(path, "/")
	root := mailboxRootLen(segs)
	if root == 0 || len(segs) < root+2 {
		return path
	}
	collection := segs[root]
	if collection != "Messages" && collection != "Folders" {
		return path
	}
	if _, ok := b.docs[strings.Join(segs[:root+2], "/")]; ok {
		return path
	}

	prefix := strings.Join(segs[:root], "/") + "/"
	id := segs[root+1]
	rest := ""
	if len(segs) > root+2 {
		rest = "/" + strings.Join(segs[root+2:], "/")
	}
	for _, p := range b.order {
		if !strings.HasPrefix(p, prefix) || lastSegment(p) != id {
			continue
		}
		parent := lastSegment(parentPath(p))
		if parent == collection || (collection == "Folders" && parent == "ChildFolders") {
			return p + rest
		}
	}
	return path
}

// destination returns the collection a copy or move of the document at
// base lands in: the messages or child folders of folder dest.
func (b *Bridge) destination(base, dest string) string {
	segs := strings.Split(base, "/")
	root := mailboxRootLen(segs)
	if root == 0 {
		return parentPath(base)
	}
	folder := b.resolve(strings.Join(segs[:root], "/") + "/Folders/" + dest)
	if lastSegment(parentPath(base)) == "Messages" {
		return folder + "/Messages"
	}
	return folder + "/ChildFolders"
}

// mailboxRootLen is the number of leading segments naming the mailbox,
// /Me or /Users/<id>, or 0 when there is none.
func mailboxRootLen(segs []string) int {
	for i, s := range segs {
		switch {
		case s == "Me":
			return i + 1
		case s == "Users" && i+1 < len(segs):
			return i + 2
		}
	}
	return 0
}

func lastSegment(p string) string {
	return p[strings.LastIndex(p, "/")+1:]
}

func (b *Bridge) put(path string, doc map[string]any) {
	if _, ok := b.docs[path]; !ok {
		b.order = append(b.order, path)
	}
	b.docs[path] = doc
}

func (b *Bridge) deleteTree(path string) {
	prefix := path + "/"
	b.order = slices.DeleteFunc(b.order, func(p string) bool {
		if p == path || strings.HasPrefix(p, prefix) {
			delete(b.docs, p)
			delete(b.hidden, p)
			return true
		}
		return false
	})
}

func (b *Bridge) notFound(path string) error {
	return b.serviceError(http.StatusNotFound, "ErrorItemNotFound",
		"The specified object was not found in the store.", path)
}

func (b *Bridge) serviceError(status int, code, message, path string) error {
	return &microsoft.ServiceError{
		StatusCode: status,
		Code:       code,
		Message:    message,
		URL:        ServiceRoot + path,
	}
}

func decodeDoc(payload []string) (map[string]any, error) {
	doc := map[string]any{}
	if len(payload) == 0 || payload[0] == "" {
		return doc, nil
	}
	if err := json.Unmarshal([]byte(payload[0]), &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	return doc, nil
}

func parentPath(p string) string {
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return ""
	}
	return p[:i]
}

// filterClause matches `Field op 'value'` and `Field/Sub op value`.
var filterClause = regexp.MustCompile(`^\s*([A-Za-z][\w/]*)\s+(eq|ne|ge|gt|le|lt)\s+(?:'((?:[^']|'')*)'|(\S+))\s*$`)

// compileFilter supports comparison clauses joined by "and". Ordering
// operators compare the text form, which orders ISO 8601 timestamps.
func compileFilter(expr string) (func(map[string]any) bool, error) {
	type clause struct {
		field []string
		op    string
		value string
	}
	var clauses []clause
	for _, part := range strings.Split(expr, " and ") {
		m := filterClause.FindStringSubmatch(part)
		if m == nil {
			return nil, fmt.Errorf("unsupported filter expression %q", part)
		}
		value := m[4]
		if m[4] == "" {
			value = strings.ReplaceAll(m[3], "''", "'")
		}
		clauses = append(clauses, clause{field: strings.Split(m[1], "/"), op: m[2], value: value})
	}

	return func(doc map[string]any) bool {
		for _, c := range clauses {
			v, ok := lookup(doc, c.field)
			if !ok {
				return false
			}
			cmp := strings.Compare(fmt.Sprint(v), c.value)
			var match bool
			switch c.op {
			case "eq":
				match = cmp == 0
			case "ne":
				match = cmp != 0
			case "ge":
				match = cmp >= 0
			case "gt":
				match = cmp > 0
			case "le":
				match = cmp <= 0
			case "lt":
				match = cmp < 0
			}
			if !match {
				return false
			}
		}
		return true
	}, nil
}

func lookup(doc map[string]any, field []string) (any, bool) {
	var cur any = doc
	for _, name := range field {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[name]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// project keeps the selected properties plus Id and the type discriminator.
func project(docs []map[string]any, selection string) []map[string]any {
	keep := map[string]bool{"Id": true, "@odata.type": true}
	for _, name := range strings.Split(selection, ",") {
		keep[strings.TrimSpace(name)] = true
	}

	out := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		p := make(map[string]any, len(keep))
		for k, v := range doc {
			if keep[k] {
				p[k] = v
			}
		}
		out = append(out, p)
	}
	return out
}
