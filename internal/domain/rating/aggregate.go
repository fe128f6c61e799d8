package rating

// Aggregate is the running mean of Count individual ratings.
type Aggregate struct {
	Count   int
	Average float64
}

func (a Aggregate) sum() float64 {
	if a.Count == 0 {
		return 0
	}
	return a.Average * float64(a.Count)
}

// Apply folds a submission into the aggregate. A first-time rating adds one
// to the count; an update swaps the old contribution for the new one and
// leaves the count alone.
func Apply(current Aggregate, s Submission) Aggregate {
	if current.Count < 0 {
		panic("rating: negative rating count")
	}

	if !s.IsUpdate() {
		count := current.Count + 1
		return Aggregate{
			Count:   count,
			Average: (current.sum() + float64(s.Value.Int())) / float64(count),
		}
	}

	if current.Count == 0 {
		panic("rating: cannot update a rating on a room with no ratings")
	}
	return Aggregate{
		Count:   current.Count,
		Average: (current.sum() - float64(s.Previous.Int()) + float64(s.Value.Int())) / float64(current.Count),
	}
}

// ApplyRating is Apply over primitive inputs. oldValue is only read when
// isUpdate is true.
func ApplyRating(currentCount int, currentAverage float64, newValue int, isUpdate bool, oldValue int) (int, float64, error) {
	v, err := NewValue(newValue)
	if err != nil {
		return 0, 0, err
	}
	s := Submission{Value: v}
	if isUpdate {
		prev, err := NewValue(oldValue)
		if err != nil {
			return 0, 0, err
		}
		s.Previous = &prev
	}
	next := Apply(Aggregate{Count: currentCount, Average: currentAverage}, s)
	return next.Count, next.Average, nil
}
