package commission

import (
	"sort"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// RuleType decides how a rule turns the keyed amount into a commission value.
type RuleType string

const (
	// RuleAmount charges a flat commission regardless of the amount.
	RuleAmount RuleType = "amount"
	// RulePercentage charges a percentage of the amount.
	RulePercentage RuleType = "percentage"
)

// Validate checks that the rule type is one of the known types.
func (t RuleType) Validate() error {
	if t != RuleAmount && t != RulePercentage {
		return errs.NewValueIsInvalidError("rule type")
	}
	return nil
}

// Rule is one bracket of a commission rule set. Bounds select the bracket by
// the keyed amount; a nil MaxBound means unbounded above. Percentage values
// are validated to [0,100] here, at rule definition, and not re-checked during
// resolution.
type Rule struct {
	id       kernel.UUID
	ruleType RuleType
	value    float64
	minBound float64
	maxBound *float64
	active   bool
	priority int
}

// NewRule creates a validated commission rule.
func NewRule(
	id kernel.UUID,
	ruleType RuleType,
	value, minBound float64,
	maxBound *float64,
	active bool,
	priority int,
) (Rule, error) {
	if err := id.Validate(); err != nil {
		return Rule{}, err
	}
	if err := ruleType.Validate(); err != nil {
		return Rule{}, err
	}
	if ruleType == RulePercentage && (value < 0 || value > 100) {
		return Rule{}, errs.NewValueIsOutOfRangeError("value", value, 0, 100)
	}
	if ruleType == RuleAmount && value < 0 {
		return Rule{}, errs.NewValueIsOutOfRangeError("value", value, 0, "unbounded")
	}
	if minBound < 0 {
		return Rule{}, errs.NewValueIsOutOfRangeError("minBound", minBound, 0, "unbounded")
	}
	if maxBound != nil && *maxBound < minBound {
		return Rule{}, errs.NewValueIsInvalidError("maxBound is below minBound")
	}

	return Rule{
		id:       id,
		ruleType: ruleType,
		value:    value,
		minBound: minBound,
		maxBound: maxBound,
		active:   active,
		priority: priority,
	}, nil
}

// ID returns the rule's unique identifier.
func (r Rule) ID() kernel.UUID { return r.id }

// Type returns the rule type.
func (r Rule) Type() RuleType { return r.ruleType }

// Value returns the flat amount or the percentage, depending on the type.
func (r Rule) Value() float64 { return r.value }

// MinBound returns the inclusive lower bracket bound.
func (r Rule) MinBound() float64 { return r.minBound }

// MaxBound returns the inclusive upper bracket bound, nil means unbounded.
func (r Rule) MaxBound() *float64 { return r.maxBound }

// IsActive reports whether the rule participates in resolution.
func (r Rule) IsActive() bool { return r.active }

// Priority returns the rule's selection priority, higher wins.
func (r Rule) Priority() int { return r.priority }

// matches reports whether the keyed amount falls inside the rule's bracket.
func (r Rule) matches(amount float64) bool {
	if !r.active || amount < r.minBound {
		return false
	}
	return r.maxBound == nil || amount <= *r.maxBound
}

// commission computes the rule's commission for the keyed amount, rounded to
// 2 decimal places.
func (r Rule) commission(amount kernel.Money) kernel.Money {
	if r.ruleType == RuleAmount {
		return kernel.NewMoneyFromFloat(r.value).Round2()
	}
	return amount.Percent(r.value)
}

// Resolution is the outcome of resolving a rule set against an amount.
// RuleUsed is nil when the default rule was applied.
type Resolution struct {
	Commission kernel.Money
	RuleUsed   *Rule
}

// Resolve picks the commission for the keyed amount. Active rules whose
// bracket contains the amount compete; the highest priority wins, ties broken
// by the lowest minBound. When no rule matches, the default rule applies and
// RuleUsed stays nil.
func Resolve(rules []Rule, defaultRule Rule, amount kernel.Money) Resolution {
	key := amount.Float64()

	matched := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.matches(key) {
			matched = append(matched, r)
		}
	}
	if len(matched) == 0 {
		return Resolution{Commission: defaultRule.commission(amount)}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].priority != matched[j].priority {
			return matched[i].priority > matched[j].priority
		}
		return matched[i].minBound < matched[j].minBound
	})

	winner := matched[0]
	return Resolution{Commission: winner.commission(amount), RuleUsed: &winner}
}
