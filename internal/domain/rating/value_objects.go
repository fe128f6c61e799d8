package rating

import "errors"

const (
	MinValue = 1
	MaxValue = 5
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

type Value struct {
	value int
}

func NewValue(v int) (Value, error) {
	if v < MinValue || v > MaxValue {
		return Value{}, ErrInvalidRating
	}
	return Value{value: v}, nil
}

// MustValue is for fixtures and tests.
func MustValue(v int) Value {
	val, err := NewValue(v)
	if err != nil {
		panic(err)
	}
	return val
}

func (v Value) Int() int { return v.value }

// Submission is one user's rating. Previous carries the value that user rated
// before, nil on their first rating.
type Submission struct {
	Value    Value
	Previous *Value
}

func (s Submission) IsUpdate() bool {
	return s.Previous != nil
}
