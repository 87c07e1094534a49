package card

import (
	"errors"

	"github.com/3cbsolver/solver/pkg/action"
	"github.com/3cbsolver/solver/pkg/state"
)

// ErrPaymentInsufficient is returned when a proposed payment doesn't cover
// a cost's colored or generic requirements.
var ErrPaymentInsufficient = errors.New("mana payment does not cover cost")

// ErrPaymentUnavailable is returned when a proposed payment draws more of
// a color than the payer's floating mana pool holds.
var ErrPaymentUnavailable = errors.New("mana payment exceeds available pool")

// ValidatePayment checks that payment covers cost -- every colored
// requirement met by the matching color, any leftover committed mana
// (including colors the cost doesn't name) absorbed by the generic
// requirement -- and that payment never commits more of a color than pool
// holds. Committed mana beyond the cost is accepted (and spent). 3CB decks are mono-colored per spec.md §8's seed scenarios, so
// this never needs to consider substituting one color for another.
func ValidatePayment(cost ManaCost, payment action.ManaPayment, pool state.ManaPool) error {
	if payment.W > pool.W || payment.U > pool.U || payment.B > pool.B ||
		payment.R > pool.R || payment.G > pool.G || payment.C > pool.C {
		return ErrPaymentUnavailable
	}

	generic := cost.Generic
	leftover := 0
	short := false

	take := func(paid, needed int) {
		if paid >= needed {
			leftover += paid - needed
		} else {
			short = true
		}
	}
	take(payment.W, cost.W)
	take(payment.U, cost.U)
	take(payment.B, cost.B)
	take(payment.R, cost.R)
	take(payment.G, cost.G)
	take(payment.C, cost.C)

	if short {
		return ErrPaymentInsufficient
	}

	if generic > 0 && leftover < generic {
		return ErrPaymentInsufficient
	}
	if payment.Total() < cost.CMC() {
		return ErrPaymentInsufficient
	}
	return nil
}

// Spend returns the pool with payment's mana removed. Callers must call
// ValidatePayment first; Spend does not re-check availability.
func Spend(pool state.ManaPool, payment action.ManaPayment) state.ManaPool {
	pool.W -= payment.W
	pool.U -= payment.U
	pool.B -= payment.B
	pool.R -= payment.R
	pool.G -= payment.G
	pool.C -= payment.C
	return pool
}

// CanonicalPayment greedily builds a single valid payment for cost out of
// pool, paying colored requirements first and generic from whatever
// remains. It exists so legal-action generation can offer one
// representative payment per castable card rather than enumerating every
// equivalent split of a mono-colored pool (spec.md §4.2, Action Model:
// "payment must already balance", not "every balancing must be offered").
// Returns ok=false if pool cannot cover cost at all.
func CanonicalPayment(cost ManaCost, pool state.ManaPool) (action.ManaPayment, bool) {
	var payment action.ManaPayment
	avail := pool

	pay := func(need int, have *int, paid *int) bool {
		if *have < need {
			return false
		}
		*have -= need
		*paid += need
		return true
	}
	if !pay(cost.W, &avail.W, &payment.W) || !pay(cost.U, &avail.U, &payment.U) ||
		!pay(cost.B, &avail.B, &payment.B) || !pay(cost.R, &avail.R, &payment.R) ||
		!pay(cost.G, &avail.G, &payment.G) || !pay(cost.C, &avail.C, &payment.C) {
		return action.ManaPayment{}, false
	}

	generic := cost.Generic
	spendGeneric := func(have *int, paid *int) {
		if generic <= 0 {
			return
		}
		take := *have
		if take > generic {
			take = generic
		}
		*have -= take
		*paid += take
		generic -= take
	}
	spendGeneric(&avail.C, &payment.C)
	spendGeneric(&avail.W, &payment.W)
	spendGeneric(&avail.U, &payment.U)
	spendGeneric(&avail.B, &payment.B)
	spendGeneric(&avail.R, &payment.R)
	spendGeneric(&avail.G, &payment.G)

	if generic > 0 {
		return action.ManaPayment{}, false
	}
	return payment, true
}
