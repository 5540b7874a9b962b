package economy

import (
	"fmt"
	"math"

	"github.com/osse101/StudyGarden_Go/internal/domain"
)

func validateQuantity(quantity int) error {
	if quantity < 1 {
		return fmt.Errorf(ErrMsgInvalidQuantityFmt, quantity, domain.ErrInvalidInput)
	}
	if quantity > domain.MaxTransactionQuantity {
		return fmt.Errorf(ErrMsgQuantityExceedsMaxFmt, quantity, domain.MaxTransactionQuantity, domain.ErrInvalidInput)
	}
	return nil
}

func totalPrice(unitPrice int64, quantity int) (int64, error) {
	if unitPrice > math.MaxInt64/int64(quantity) {
		return 0, fmt.Errorf(ErrMsgTotalOverflowFmt, unitPrice, quantity, domain.ErrInvalidInput)
	}
	return unitPrice * int64(quantity), nil
}
