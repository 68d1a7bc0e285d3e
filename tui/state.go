package tui

type state int

const (
	sourcesState state = iota
	resultsState
	errorState
)
