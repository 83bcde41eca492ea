package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNoSunset matches every NoSunsetError.
	ErrNoSunset = errors.New("no sunset")

	// ErrPolarDay: the sun stays above the sunset threshold all day.
	ErrPolarDay = errors.New("polar day")
	// ErrPolarNight: the sun never reaches the sunset threshold.
	ErrPolarNight = errors.New("polar night")
	// ErrSolverDivergence: the forward scan hit its step cap without a crossing.
	ErrSolverDivergence = errors.New("sunset solver did not converge")

	// ErrNoShorelineFound is returned when no shoreline segments are available.
	ErrNoShorelineFound = errors.New("no shoreline found")

	ErrBeachNotFound      = errors.New("beach not found")
	ErrLocationNotFound   = errors.New("location not found")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// NoSunsetCondition names why a date has no sunset.
type NoSunsetCondition string

const (
	ConditionPolarDay         NoSunsetCondition = "polar_day"
	ConditionPolarNight       NoSunsetCondition = "polar_night"
	ConditionSolverDivergence NoSunsetCondition = "solver_divergence"
)

// NoSunsetError is returned by the sunset solver.
type NoSunsetError struct {
	Condition NoSunsetCondition
	Date      time.Time
}

func (e *NoSunsetError) Error() string {
	day := e.Date.Format("2006-01-02")
	switch e.Condition {
	case ConditionPolarDay:
		return fmt.Sprintf("no sunset on %s: midnight sun (sun stays above horizon)", day)
	case ConditionPolarNight:
		return fmt.Sprintf("no sunset on %s: polar night (sun stays below horizon)", day)
	default:
		return fmt.Sprintf("could not find sunset on %s", day)
	}
}

// Is lets errors.Is match both ErrNoSunset and the condition sentinel.
func (e *NoSunsetError) Is(target error) bool {
	switch target {
	case ErrNoSunset:
		return true
	case ErrPolarDay:
		return e.Condition == ConditionPolarDay
	case ErrPolarNight:
		return e.Condition == ConditionPolarNight
	case ErrSolverDivergence:
		return e.Condition == ConditionSolverDivergence
	}
	return false
}
