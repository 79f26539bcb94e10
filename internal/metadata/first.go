package metadata

import (
	"context"
	"fmt"
)

// attempt is one named candidate in a first-success iteration.
type attempt struct {
	name string
	run  func() (*Resolved, error)
}

// firstSuccessful runs attempts in order and returns the first success,
// collecting a warning per failed attempt. Failures never escape the loop;
// the only terminal errors are full exhaustion (ErrNoMetadata) or context
// cancellation, which discards any remaining attempts.
func firstSuccessful(ctx context.Context, attempts []attempt) (*Resolved, []string, error) {
	var warnings []string
	for _, a := range attempts {
		if err := ctx.Err(); err != nil {
			return nil, warnings, err
		}
		meta, err := a.run()
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", a.name, err))
			continue
		}
		return meta, warnings, nil
	}
	return nil, warnings, ErrNoMetadata
}
