package listing

import "fmt"

type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a dismissable, non-blocking message for the owner.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

// Navigator walks a draft through the wizard steps.
type Navigator struct {
	draft   *Draft
	step    Step
	notices []Notice
}

func NewNavigator(d *Draft) *Navigator {
	return &Navigator{draft: d, step: StepEssentials}
}

func (n *Navigator) Step() Step { return n.step }

// Resume places the navigator on an externally requested step, never past
// what the draft can currently reach.
func (n *Navigator) Resume(k Step) {
	if k < StepEssentials {
		k = StepEssentials
	}
	if k > StepSEO {
		k = StepSEO
	}
	if reach := FurthestReachable(n.draft); k > reach {
		k = reach
	}
	n.step = k
}

// Next validates the current step and advances when it passes. Failing
// fields are recorded on the draft.
func (n *Navigator) Next() error {
	errs := ValidateStep(n.draft, n.step)
	if len(errs) > 0 {
		n.draft.SetErrors(errs)
		n.Notify(NoticeError, "Please fix the highlighted fields before continuing")
		return ErrStepInvalid
	}
	if n.step < StepSEO {
		n.step++
	}
	return nil
}

func (n *Navigator) Previous() {
	if n.step > StepEssentials {
		n.step--
	}
}

// JumpTo moves directly to k when every earlier step passes. A refused jump
// leaves the step alone and queues one warning.
func (n *Navigator) JumpTo(k Step) error {
	if !CanAdvance(n.draft, k) {
		n.Notify(NoticeWarning, fmt.Sprintf("Complete the earlier steps before opening %s", k))
		return ErrStepLocked
	}
	n.step = k
	return nil
}

// GoTo moves without any guard. Submission uses it to show the step that
// blocked a publish.
func (n *Navigator) GoTo(k Step) {
	if k.Valid() {
		n.step = k
	}
}

func (n *Navigator) Notify(level NoticeLevel, msg string) {
	n.notices = append(n.notices, Notice{Level: level, Message: msg})
}

// TakeNotices drains the queued notices.
func (n *Navigator) TakeNotices() []Notice {
	out := n.notices
	n.notices = nil
	if out == nil {
		out = []Notice{}
	}
	return out
}
