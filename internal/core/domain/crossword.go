package domain

import (
	"fmt"
	"time"
)

// PuzzleMetadata holds the descriptive fields of a published puzzle.
type PuzzleMetadata struct {
	Author string
	Editor string
}

// Crossword is the archived poll record of one published puzzle. It is
// created once and never modified.
type Crossword struct {
	PublishedDate int64  `json:"publishedDate"`
	DateString    string `json:"dateString"`
	DayName       string `json:"dayName"`
	Author        string `json:"author"`
	Editor        string `json:"editor"`
	PollExists    bool   `json:"pollExists"`

	PollURL   *string `json:"pollURL"`
	Votes     *int64  `json:"votes"`
	Excellent *int64  `json:"excellent"`
	Good      *int64  `json:"good"`
	Average   *int64  `json:"average"`
	Poor      *int64  `json:"poor"`
	Terrible  *int64  `json:"terrible"`
	NoVote    *int64  `json:"noVote"`

	ExcellentPercentage *float64 `json:"excellentPercentage"`
	GoodPercentage      *float64 `json:"goodPercentage"`
	AveragePercentage   *float64 `json:"averagePercentage"`
	PoorPercentage      *float64 `json:"poorPercentage"`
	TerriblePercentage  *float64 `json:"terriblePercentage"`
	AverageRating       *float64 `json:"averageRating"`
}

// NewCrosswordWithoutPoll records a day whose discussion poll was never found.
func NewCrosswordWithoutPoll(day time.Time, meta PuzzleMetadata) *Crossword {
	return &Crossword{
		PublishedDate: DayKey(day),
		DateString:    DateString(day),
		DayName:       DayName(day),
		Author:        meta.Author,
		Editor:        meta.Editor,
		PollExists:    false,
	}
}

// NewCrosswordWithPoll records a day together with its closed poll results.
func NewCrosswordWithPoll(day time.Time, meta PuzzleMetadata, pollURL string, t PollTally) *Crossword {
	c := NewCrosswordWithoutPoll(day, meta)
	c.PollExists = true
	c.PollURL = &pollURL
	c.Votes = &t.Votes
	c.Excellent = &t.Excellent
	c.Good = &t.Good
	c.Average = &t.Average
	c.Poor = &t.Poor
	c.Terrible = &t.Terrible
	c.NoVote = &t.NoVote
	c.ExcellentPercentage = &t.ExcellentPercentage
	c.GoodPercentage = &t.GoodPercentage
	c.AveragePercentage = &t.AveragePercentage
	c.PoorPercentage = &t.PoorPercentage
	c.TerriblePercentage = &t.TerriblePercentage
	c.AverageRating = &t.AverageRating
	return c
}

// Validate checks that the poll fields are either all present or all absent,
// matching PollExists.
func (c *Crossword) Validate() error {
	if c.PublishedDate != DayKey(DayFromKey(c.PublishedDate)) {
		return fmt.Errorf("%w: published date %d is not a UTC midnight", ErrInvalidCrossword, c.PublishedDate)
	}

	present := 0
	for _, set := range c.pollFieldsSet() {
		if set {
			present++
		}
	}

	if c.PollExists && present != len(c.pollFieldsSet()) {
		return fmt.Errorf("%w: poll exists but results are incomplete", ErrInvalidCrossword)
	}
	if !c.PollExists && present != 0 {
		return fmt.Errorf("%w: poll absent but results are present", ErrInvalidCrossword)
	}
	return nil
}

func (c *Crossword) pollFieldsSet() []bool {
	return []bool{
		c.Votes != nil,
		c.Excellent != nil,
		c.Good != nil,
		c.Average != nil,
		c.Poor != nil,
		c.Terrible != nil,
		c.NoVote != nil,
		c.ExcellentPercentage != nil,
		c.GoodPercentage != nil,
		c.AveragePercentage != nil,
		c.PoorPercentage != nil,
		c.TerriblePercentage != nil,
		c.AverageRating != nil,
	}
}
