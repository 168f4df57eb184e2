package order

import (
	"strings"

	"github.com/chic-commerce/storefront-api/internal/apperror"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// Steps is the fixed progress-bar ordering. Cancelled is not a step.
var Steps = []Status{StatusPending, StatusConfirmed, StatusShipped, StatusDelivered}

func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if st == StatusCancelled || st.stepIndex() >= 0 {
		return st, true
	}
	return "", false
}

func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

func (s Status) stepIndex() int {
	for i, step := range Steps {
		if step == s {
			return i
		}
	}
	return -1
}

// CanTransition allows forward moves along Steps (skipping is fine) and
// cancellation from any non-terminal status.
func CanTransition(from, to Status) bool {
	if from.Terminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	fi, ti := from.stepIndex(), to.stepIndex()
	return fi >= 0 && ti > fi
}

// Transition returns an *apperror.InvalidTransition when from → to is not
// allowed.
func Transition(from, to Status) error {
	if !CanTransition(from, to) {
		return &apperror.InvalidTransition{From: string(from), To: string(to)}
	}
	return nil
}

// Progress is the read-only tracker rendering of a status.
type Progress struct {
	Status    Status   `json:"status"`
	Steps     []Status `json:"steps"`
	StepIndex int      `json:"stepIndex"`
	Cancelled bool     `json:"cancelled"`
	Terminal  bool     `json:"terminal"`
}

// Track maps a status onto the progress bar. Cancelled orders report
// StepIndex -1; the index never exceeds the last step.
func Track(s Status) Progress {
	steps := make([]Status, len(Steps))
	copy(steps, Steps)
	return Progress{
		Status:    s,
		Steps:     steps,
		StepIndex: s.stepIndex(),
		Cancelled: s == StatusCancelled,
		Terminal:  s.Terminal(),
	}
}
