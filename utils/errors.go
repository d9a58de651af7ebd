package utils

import (
	"errors"
	"fmt"
)

// RunAndWrapOnError runs fn and joins its failure onto err. The original err
// always stays reachable through errors.Is.
func RunAndWrapOnError(fn func() error, err error) error {
	if fnErr := fn(); fnErr != nil {
		if err == nil {
			return fnErr
		}
		return errors.Join(err, fmt.Errorf("cleanup: %w", fnErr))
	}
	return err
}
