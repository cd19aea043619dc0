package mappaint

import (
	"fmt"

	"github.com/jamesrr39/goutil/errorsx"
)

// Opacity is an optional opacity fraction. The zero Opacity is unset; the
// consumer of an unset opacity applies its own default (usually fully
// opaque).
type Opacity struct {
	Fraction float64
	Set      bool
}

func NewOpacity(fraction float64) Opacity {
	return Opacity{Fraction: fraction, Set: true}
}

func (o Opacity) Validate() errorsx.Error {
	if !o.Set {
		return nil
	}

	if o.Fraction <= 0 {
		return errorsx.Errorf("opacity must be greater than 0 (got %v). Leave it unset for the consumer's default instead", o.Fraction)
	}

	if o.Fraction > 1 {
		return errorsx.Errorf("opacity must not be greater than 1 (got %v)", o.Fraction)
	}

	return nil
}

func (o Opacity) String() string {
	if !o.Set {
		return "opacity (unset)"
	}

	return fmt.Sprintf("opacity %v", o.Fraction)
}
