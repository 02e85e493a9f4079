package dice

import "go.uber.org/zap"

// chanceResolution is the granularity of probability checks.
const chanceResolution = 1_000_000

// Roller wraps a Source and logger to provide logged dice rolling.
// All rolls are logged at debug level with expression, dice values, modifier, and total.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Roll evaluates expr and logs the result at debug level.
func (r *Roller) Roll(expr Expression) RollResult {
	result := Roll(expr, r.src)
	r.logger.Debug("dice roll",
		zap.String("expression", result.Expression),
		zap.Ints("dice", result.Dice),
		zap.Int("modifier", result.Modifier),
		zap.Int("total", result.Total()),
	)
	return result
}

// RollExpr parses expr and rolls it, logging the result.
func (r *Roller) RollExpr(expr string) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return r.Roll(e), nil
}

// Total rolls expr and returns only its total.
func (r *Roller) Total(expr Expression) int {
	return r.Roll(expr).Total()
}

// Pick returns a uniformly chosen index in [0, n).
//
// Precondition: n > 0.
func (r *Roller) Pick(n int) int {
	return r.src.Intn(n)
}

// Chance reports whether an event with probability p occurs.
// p <= 0 never succeeds and p >= 1 always succeeds.
func (r *Roller) Chance(p float64) bool {
	threshold := int(p * chanceResolution)
	hit := r.src.Intn(chanceResolution) < threshold
	r.logger.Debug("chance roll",
		zap.Float64("probability", p),
		zap.Bool("hit", hit),
	)
	return hit
}
