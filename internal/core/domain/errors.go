package domain

import (
	"errors"
	"fmt"
)

var (
	ErrCrosswordExists  = errors.New("crossword already recorded for this date")
	ErrInvalidCrossword = errors.New("invalid crossword record")
	ErrVotingOpen       = errors.New("poll voting has not ended")
	ErrInvalidPoll      = errors.New("unexpected poll options")
	ErrNoVotes          = fmt.Errorf("%w: no opinion votes cast", ErrInvalidPoll)
	ErrDecode           = errors.New("unexpected response payload")
	ErrAuthentication   = errors.New("forum authentication failed")
)
