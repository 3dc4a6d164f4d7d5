package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a client acts before connecting.
	ErrSessionNotFound = errors.New("browser session not found")
	// ErrItemNotFound indicates an id that is not part of the catalog.
	ErrItemNotFound = errors.New("catalog item not found")
	// ErrComparisonFull is returned when a fourth language is added to the comparison.
	ErrComparisonFull = errors.New("comparison selection is full")
	// ErrComparisonTooSmall is returned when the comparison view is opened with fewer than two languages.
	ErrComparisonTooSmall = errors.New("comparison needs at least two languages")
	// ErrNoActiveQuiz is returned for quiz intents while no game is running.
	ErrNoActiveQuiz = errors.New("no active quiz")
	// ErrQuizFinished is returned when answering after the last question.
	ErrQuizFinished = errors.New("quiz already finished")
	// ErrAnswerPending is returned when answering while feedback is still shown.
	ErrAnswerPending = errors.New("answer feedback still pending")
	// ErrAnswerOutOfRange indicates a choice index outside the current question.
	ErrAnswerOutOfRange = errors.New("answer choice out of range")
	// ErrUnknownIntent is returned for intents the core does not understand.
	ErrUnknownIntent = errors.New("unknown intent")

	ErrDuplicateID   = errors.New("duplicate catalog id")
	ErrDuplicateName = errors.New("duplicate catalog name")
	ErrEmptyID       = errors.New("empty catalog id")
	ErrEmptyName     = errors.New("empty catalog name")
)
