package kpi

import "errors"

var (
	ErrInvalidObservation = errors.New("invalid observation")
	ErrUnknownKPI         = errors.New("unknown kpi")
	ErrUnknownCategory    = errors.New("unknown category")
)
