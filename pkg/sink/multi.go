package sink

import (
	"errors"

	"github.com/itohio/gowx/pkg/station"
)

// Multi reports every reading to all of its reporters. All reporters are
// called even if some fail; the errors are joined.
type Multi []station.Reporter

var _ station.Reporter = Multi(nil)

// Report forwards r to each reporter.
func (m Multi) Report(r station.Reading) error {
	var errs []error
	for _, rep := range m {
		if err := rep.Report(r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
