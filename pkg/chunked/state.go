package chunked

import "errors"

// State is the generator position within the document.
type State int

const (
	StateBeginPage State = iota
	StateStyleSheet
	StatePreScript
	StateScript
	StatePostScript
	StateTabButtonHeader
	StateTabBody
	StateFooter
	StateDone
)

var stateNames = map[State]string{
	StateBeginPage:       "begin-page",
	StateStyleSheet:      "style-sheet",
	StatePreScript:       "pre-script",
	StateScript:          "script",
	StatePostScript:      "post-script",
	StateTabButtonHeader: "tab-button-header",
	StateTabBody:         "tab-body",
	StateFooter:          "footer",
	StateDone:            "done",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

var (
	// ErrBufferTooSmall is returned when the next atomic unit cannot fit even
	// in an empty buffer. Retrying with the same buffer size cannot succeed.
	ErrBufferTooSmall = errors.New("chunked: buffer too small for next unit")
	// ErrReleased is returned when a released context or stream is reused.
	ErrReleased = errors.New("chunked: context released")
	// ErrInvalidState is returned after the failure marker has been written
	// for an unrecognised generator state.
	ErrInvalidState = errors.New("chunked: invalid generator state")
)

// FailureMarker is written into the output when the generator hits an
// unknown state.
const FailureMarker = "Internal error"
