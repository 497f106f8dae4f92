package workflow

import "fmt"

type Status string

const (
	StatusCompleted             Status = "completed"
	StatusCompletedWithFailures Status = "completed-with-failures"
	StatusFailed                Status = "failed"
)

type Summary struct {
	Results      []Result
	SuccessCount int
	FailureCount int
}

func (s *Summary) add(r Result) {
	s.Results = append(s.Results, r)
	if r.Succeeded {
		s.SuccessCount++
	} else {
		s.FailureCount++
	}
}

// Succeeded reports overall success: at least one issue was created.
func (s *Summary) Succeeded() bool {
	return s.SuccessCount > 0
}

func (s *Summary) Status() Status {
	switch {
	case s.SuccessCount == 0:
		return StatusFailed
	case s.FailureCount > 0:
		return StatusCompletedWithFailures
	}

	return StatusCompleted
}

func (s *Summary) Failed() []Result {
	var out []Result
	for _, r := range s.Results {
		if !r.Succeeded {
			out = append(out, r)
		}
	}

	return out
}

func (s *Summary) Message() string {
	switch s.Status() {
	case StatusCompleted:
		return fmt.Sprintf("Created %d issue(s) and handed them to Copilot", s.SuccessCount)
	case StatusCompletedWithFailures:
		return fmt.Sprintf("Completed with some failures: %d issue(s) created, %d repositories failed",
			s.SuccessCount, s.FailureCount)
	}

	return fmt.Sprintf("Failed completely: no issue could be created in %d repositories. "+
		"Check that the token can create issues in the organization", s.FailureCount)
}
