package directory

import (
	"fmt"

	"github.com/custodia-labs/gshell/internal/core/domain"
)

var errNothingToUpdate = fmt.Errorf("%w: nothing to update", domain.ErrInvalidInput)
