package command

import (
	"errors"
	"fmt"

	"github.com/tair/realestate-favorites/internal/favorite/domain"
)

// wrapUnlessNotFound passes not found errors through untouched so callers
// can render them, and wraps everything else with msg
func wrapUnlessNotFound(err error, msg string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%s: %w", msg, err)
}
