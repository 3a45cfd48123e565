// README: Plan quota errors and defaults.
package quota

import "errors"

// ErrQuotaExceeded is returned when a user has generated every plan allowed this month.
var ErrQuotaExceeded = errors.New("monthly plan quota exceeded")

// DefaultMonthlyPlans is used when the configured allowance is not positive.
const DefaultMonthlyPlans = 20
