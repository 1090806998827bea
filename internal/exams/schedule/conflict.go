package schedule

import (
	"fmt"

	"examdesk/pkg/model"
)

// Conflict describes why a candidate exam cannot be booked: the witness
// exam it collides with, the resource both claim, and the two spans.
type Conflict struct {
	Witness       *model.Exam
	Resource      SharedResource
	CandidateSpan TimeSpan
	WitnessSpan   TimeSpan
}

// Message renders the conflict for an API error response.
func (c *Conflict) Message() string {
	return fmt.Sprintf(
		"Exam conflicts with %q (%s): both need %s during %s",
		c.Witness.Name,
		c.WitnessSpan,
		c.Resource,
		c.CandidateSpan,
	)
}

// Details returns the structured payload attached to a conflict error.
func (c *Conflict) Details() map[string]any {
	return map[string]any{
		"conflicting_exam_id":   c.Witness.ID,
		"conflicting_exam_name": c.Witness.Name,
		"resource_kind":         string(c.Resource.Kind),
		"resource_id":           c.Resource.ID,
		"candidate_span":        c.CandidateSpan.String(),
		"witness_span":          c.WitnessSpan.String(),
	}
}

// FindConflict checks the candidate against every exam in others and
// returns the first conflict found, or nil when the candidate is
// bookable. A conflict requires both a shared resource and a time
// overlap on the same date. Cancelled exams and the candidate itself
// are skipped. Callers pass others sorted by start time then ID so the
// witness is deterministic for a given schedule.
func FindConflict(candidate *model.Exam, others []*model.Exam) (*Conflict, error) {
	candidateSpan, err := NewTimeSpan(candidate.StartTime, candidate.DurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("invalid candidate time: %w", err)
	}

	for _, other := range others {
		if other.ID != "" && other.ID == candidate.ID {
			continue
		}
		if other.Status == model.ExamCancelled {
			continue
		}
		if other.ExamDate != candidate.ExamDate {
			continue
		}

		shared := SharedResourceBetween(candidate, other)
		if shared == nil {
			continue
		}

		otherSpan, err := NewTimeSpan(other.StartTime, other.DurationMinutes)
		if err != nil {
			return nil, fmt.Errorf("invalid stored exam %s: %w", other.ID, err)
		}

		if candidateSpan.Overlaps(otherSpan) {
			return &Conflict{
				Witness:       other,
				Resource:      *shared,
				CandidateSpan: candidateSpan,
				WitnessSpan:   otherSpan,
			}, nil
		}
	}

	return nil, nil
}
