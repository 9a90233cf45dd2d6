package outlook

import (
	"encoding/json"
	"fmt"
)

// OperationKind classifies a bridge operation by how it maps onto a request.
type OperationKind int

const (
	// OpRead reads the resource at the path.
	OpRead OperationKind = iota
	// OpList lists the collection at the path with query options.
	OpList
	// OpCreate posts a new resource to the collection at the path.
	OpCreate
	// OpUpdate patches the resource at the path.
	OpUpdate
	// OpDelete deletes the resource at the path.
	OpDelete
	// OpAction posts to an action segment below the path.
	OpAction
)

// String returns the kind name.
func (k OperationKind) String() string {
	switch k {
	case OpRead:
		return "read"
	case OpList:
		return "list"
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	case OpAction:
		return "action"
	default:
		return "unknown"
	}
}

// Operation describes one named bridge operation.
type Operation struct {
	Name string
	Kind OperationKind
	// Action is the path segment posted to for OpAction.
	Action string
	// Body names the action body shape.
	Body ActionBody
}

// ActionBody selects how action payload arguments become a request body.
type ActionBody int

const (
	// BodyNone posts an empty body.
	BodyNone ActionBody = iota
	// BodyDestination posts {"DestinationId": payload[0]}.
	BodyDestination
	// BodyComment posts {"Comment": payload[0]}.
	BodyComment
	// BodyForward posts {"Comment": payload[0], "ToRecipients": payload[1]}.
	BodyForward
)

// Resource names with the full read/list/create/update/delete set.
var crudResources = []string{
	"User",
	"Folder",
	"Message",
	"Event",
	"Calendar",
	"CalendarGroup",
	"Contact",
	"ContactFolder",
	"Attachment",
}

var operations = buildOperations()

func buildOperations() map[string]Operation {
	ops := make(map[string]Operation)
	add := func(op Operation) {
		ops[op.Name] = op
	}

	for _, r := range crudResources {
		add(Operation{Name: "get" + r, Kind: OpRead})
		add(Operation{Name: "get" + r + "s", Kind: OpList})
		add(Operation{Name: "add" + r, Kind: OpCreate})
		add(Operation{Name: "update" + r, Kind: OpUpdate})
		add(Operation{Name: "delete" + r, Kind: OpDelete})
	}
	add(Operation{Name: "getAttachmentItem", Kind: OpRead})

	for _, r := range []string{"Message", "Folder"} {
		add(Operation{Name: "copy" + r, Kind: OpAction, Action: "copy", Body: BodyDestination})
		add(Operation{Name: "move" + r, Kind: OpAction, Action: "move", Body: BodyDestination})
	}

	add(Operation{Name: "send", Kind: OpAction, Action: "send"})
	add(Operation{Name: "reply", Kind: OpAction, Action: "reply", Body: BodyComment})
	add(Operation{Name: "replyAll", Kind: OpAction, Action: "replyall", Body: BodyComment})
	add(Operation{Name: "forward", Kind: OpAction, Action: "forward", Body: BodyForward})
	add(Operation{Name: "createReply", Kind: OpAction, Action: "createreply"})
	add(Operation{Name: "createReplyAll", Kind: OpAction, Action: "createreplyall"})
	add(Operation{Name: "createForward", Kind: OpAction, Action: "createforward"})
	add(Operation{Name: "accept", Kind: OpAction, Action: "accept", Body: BodyComment})
	add(Operation{Name: "decline", Kind: OpAction, Action: "decline", Body: BodyComment})
	add(Operation{Name: "tentativelyAccept", Kind: OpAction, Action: "tentativelyaccept", Body: BodyComment})

	return ops
}

// LookupOperation returns the named operation.
func LookupOperation(name string) (Operation, bool) {
	op, ok := operations[name]
	return op, ok
}

// OperationCount returns the number of known operations.
func OperationCount() int {
	return len(operations)
}

type destinationBody struct {
	DestinationID string `json:"DestinationId"`
}

type commentBody struct {
	Comment string `json:"Comment"`
}

type forwardBody struct {
	Comment      string          `json:"Comment"`
	ToRecipients json.RawMessage `json:"ToRecipients"`
}

// ActionRequestBody builds the request body of an action from its payload.
// A nil result means the action posts an empty body.
func (op Operation) ActionRequestBody(payload []string) ([]byte, error) {
	arg := func(i int) string {
		if i < len(payload) {
			return payload[i]
		}
		return ""
	}

	switch op.Body {
	case BodyNone:
		return nil, nil
	case BodyDestination:
		return json.Marshal(destinationBody{DestinationID: arg(0)})
	case BodyComment:
		return json.Marshal(commentBody{Comment: arg(0)})
	case BodyForward:
		recipients := json.RawMessage(arg(1))
		if len(recipients) == 0 {
			recipients = json.RawMessage("[]")
		}
		if !json.Valid(recipients) {
			return nil, fmt.Errorf("%s: recipients are not valid JSON", op.Name)
		}
		return json.Marshal(forwardBody{Comment: arg(0), ToRecipients: recipients})
	default:
		return nil, fmt.Errorf("%s: unknown action body %d", op.Name, op.Body)
	}
}
