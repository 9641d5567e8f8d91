package scheduling

import "time"

// Cancellation notice thresholds. Inside MinCancelNotice a confirmed booking
// cannot be cancelled at all; between the two the teacher must approve;
// beyond DirectCancelNotice the cancellation is immediate with a refund.
const (
	MinCancelNotice    = 6 * time.Hour
	DirectCancelNotice = 12 * time.Hour
)

type CancellationDecision int

const (
	CancelRejectedStarted CancellationDecision = iota
	CancelRejectedTooLate
	CancelNeedsApproval
	CancelImmediate
)

// DecideCancellation is the pure cancellation-window rule, a function of the
// current time and the booking start only.
func DecideCancellation(now, start time.Time) CancellationDecision {
	notice := start.Sub(now)
	switch {
	case notice < 0:
		return CancelRejectedStarted
	case notice < MinCancelNotice:
		return CancelRejectedTooLate
	case notice < DirectCancelNotice:
		return CancelNeedsApproval
	default:
		return CancelImmediate
	}
}
