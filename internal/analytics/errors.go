package analytics

import (
	"fmt"

	"ecogenius/internal/services"
)

func errUnconfigured(dataset string) error {
	return services.Wrap(services.ErrConfiguration, "analytics", "load "+dataset, "no csv path configured", nil)
}

func errNoRows(dataset string) error {
	return fmt.Errorf("%s csv has no usable rows", dataset)
}
