package domain

// PollTally is the validated outcome of a closed quality poll. Votes counts
// only the five opinion options; NoVote is kept apart.
type PollTally struct {
	Votes     int64
	Excellent int64
	Good      int64
	Average   int64
	Poor      int64
	Terrible  int64
	NoVote    int64

	ExcellentPercentage float64
	GoodPercentage      float64
	AveragePercentage   float64
	PoorPercentage      float64
	TerriblePercentage  float64

	AverageRating float64
}
