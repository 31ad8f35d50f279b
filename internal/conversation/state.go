// Package conversation implements the listing-submission and report flows as
// explicit finite state machines. The machines consume typed inputs produced
// by the transport boundary and emit transport-agnostic replies; nothing in
// this package knows about the messaging platform.
package conversation

import "github.com/starkeae/divarkhaf-bot/internal/listing/domain"

type State int

const (
	StateIdle State = iota
	StateCategory
	StateTitle
	StateDescription
	StatePrice
	StateContact
	StateLocation
	StatePhoto
	StateConfirm
	StateReportReason
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCategory:
		return "category"
	case StateTitle:
		return "title"
	case StateDescription:
		return "description"
	case StatePrice:
		return "price"
	case StateContact:
		return "contact"
	case StateLocation:
		return "location"
	case StatePhoto:
		return "photo"
	case StateConfirm:
		return "confirm"
	case StateReportReason:
		return "report_reason"
	default:
		return "unknown"
	}
}

type InputKind int

const (
	InputText InputKind = iota
	InputPhoto
)

// Intent is the enumerated command produced by the boundary's label mapping.
// The machine never dispatches on raw message text.
type Intent int

const (
	IntentNone Intent = iota
	IntentCancel
	IntentSkipPhotos
	IntentMorePhotos
	IntentFinishPhotos
	IntentSubmit
)

// Input is one inbound user event, already classified by the boundary.
type Input struct {
	Kind     InputKind
	Text     string
	PhotoRef string          // best-resolution file reference for photo inputs
	Category domain.Category // set when the text matched a category label
	Intent   Intent
}

// Button is one inline action button: display text plus callback payload.
type Button struct {
	Text string
	Data string
}

// Reply is a transport-agnostic outbound message.
type Reply struct {
	Text           string
	Keyboard       [][]string // reply keyboard rows, empty to keep current
	Inline         [][]Button
	RemoveKeyboard bool
}

// Result is the outcome of feeding one input to a machine.
type Result struct {
	Replies   []Reply
	Done      bool   // the flow ended and the session should be discarded
	ListingID string // set when a listing was committed
}

func reply(text string) Reply { return Reply{Text: text} }
