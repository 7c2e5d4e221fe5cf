package model

// Prediction pairs a scoring-record id with its predicted probability of
// default. The positive class is always class 1.
type Prediction struct {
	ID          string
	Probability float64
}
