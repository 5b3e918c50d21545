package match

import "time"

type TimerCommand int

const (
	TimerKeep TimerCommand = iota
	TimerSchedule
	TimerCancel
)

// AllRounds in a cancel action cancels the pending timer whatever round it
// belongs to.
const AllRounds = -2

// TimerAction tells the owner of the state what to do with the deadline timer
// after a transition.
type TimerAction struct {
	Command  TimerCommand
	Round    int
	Deadline time.Time
}

func keepTimer() TimerAction {
	return TimerAction{Command: TimerKeep}
}

func scheduleTimer(round int, deadline time.Time) TimerAction {
	return TimerAction{
		Command:  TimerSchedule,
		Round:    round,
		Deadline: deadline,
	}
}

func cancelTimer(round int) TimerAction {
	return TimerAction{
		Command: TimerCancel,
		Round:   round,
	}
}

// Cancels reports whether a timer pending for the given round must be cancelled.
func (a TimerAction) Cancels(round int) bool {
	if a.Command != TimerCancel {
		return false
	}
	return a.Round == AllRounds || a.Round == round
}
