// Package viewstate holds the reducers behind the quote views. Every type is
// an immutable value: transitions return the next state and leave the
// receiver untouched, so a view can only change by storing what a
// transition hands back.
package viewstate

// Phase tags which variant of a request view-state is active.
type Phase int

const (
	Idle Phase = iota
	Pending
	Failed
	Succeeded
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Failed:
		return "failed"
	case Succeeded:
		return "succeeded"
	default:
		return "unknown"
	}
}

// Branch names the single thing a request view renders.
type Branch int

const (
	BranchNothing Branch = iota
	BranchError
	BranchPending
	BranchSuccess
)

func (b Branch) String() string {
	switch b {
	case BranchError:
		return "error"
	case BranchPending:
		return "pending"
	case BranchSuccess:
		return "success"
	default:
		return "nothing"
	}
}

// Attempt identifies one request issued by a view. Results carry the attempt
// they answer; anything else is stale.
type Attempt uint64

// request is the lifecycle shared by Fetch and Upload.
type request struct {
	phase   Phase
	attempt Attempt
	reason  error
}

func (r request) start() request {
	return request{phase: Pending, attempt: r.attempt + 1}
}

// accepts reports whether a result for attempt may be applied.
func (r request) accepts(attempt Attempt) bool {
	return r.phase == Pending && attempt == r.attempt
}

// branch applies the render precedence: error, pending, success, nothing.
func (r request) branch() Branch {
	switch {
	case r.phase == Failed:
		return BranchError
	case r.phase == Pending:
		return BranchPending
	case r.phase == Succeeded:
		return BranchSuccess
	default:
		return BranchNothing
	}
}
