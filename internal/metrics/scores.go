package metrics

// RatingScale maps categorical answers onto numeric values so rated
// questions can be rolled up into a single score.
type RatingScale struct {
	Mapping map[string]float64
}

// DefaultScale is the five-point scale used by the evaluation forms.
func DefaultScale() RatingScale {
	return RatingScale{
		Mapping: map[string]float64{
			"Excellent":    5,
			"Very Good":    4,
			"Good":         3,
			"Satisfactory": 2,
			"Poor":         1,
		},
	}
}

// Max returns the highest value in the scale, 0 for an empty scale.
func (s RatingScale) Max() float64 {
	max := 0.0
	for _, v := range s.Mapping {
		if v > max {
			max = v
		}
	}
	return max
}

// AttributeScore is the average rating of one question on the scale.
type AttributeScore struct {
	Question string
	Average  float64
}

// ScoreCard is the score rollup shown at the end of a report: per-question
// averages, their total against the maximum possible, the total converted
// onto a smaller reporting scale, and the overall average rating.
type ScoreCard struct {
	Attributes     []AttributeScore
	Total          float64
	MaxPossible    float64
	Converted      float64
	ConvertedMax   float64
	OverallAverage float64
}

// Score rolls the question summaries up into a ScoreCard. Numeric
// questions contribute their mean directly; categorical questions are
// translated through the scale. Questions with no scorable responses are
// left out of the rollup entirely.
func Score(summaries []QuestionSummary, scale RatingScale, convertedMax float64) ScoreCard {
	card := ScoreCard{ConvertedMax: convertedMax}

	maxRating := scale.Max()
	for _, s := range summaries {
		avg, ok := attributeAverage(s, scale)
		if !ok {
			continue
		}
		card.Attributes = append(card.Attributes, AttributeScore{
			Question: s.Question,
			Average:  avg,
		})
		card.Total += avg
	}

	if len(card.Attributes) == 0 {
		return card
	}

	card.MaxPossible = float64(len(card.Attributes)) * maxRating
	if card.MaxPossible > 0 {
		card.Converted = card.Total / card.MaxPossible * convertedMax
	}
	card.OverallAverage = card.Total / float64(len(card.Attributes))
	return card
}

func attributeAverage(s QuestionSummary, scale RatingScale) (float64, bool) {
	if s.Numeric {
		if s.Mean == nil {
			return 0, false
		}
		return *s.Mean, true
	}

	sum := 0.0
	count := 0
	for category, n := range s.Counts {
		value, ok := scale.Mapping[category]
		if !ok {
			continue
		}
		sum += value * float64(n)
		count += n
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}
