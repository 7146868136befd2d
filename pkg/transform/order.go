package transform

import (
	"math/rand/v2"
	"slices"
	"strings"

	apperr "github.com/Roman-/img2pdf/pkg/errors"
)

// Order names a reordering applied before layout.
type Order string

const (
	OrderIdentity Order = "identity"
	OrderReverse  Order = "reverse"
	OrderShuffle  Order = "shuffle"
)

// ParseOrder parses an order name. The empty string means identity, and
// "none"/"original" are accepted as aliases for it.
func ParseOrder(s string) (Order, error) {
	switch o := Order(strings.ToLower(strings.TrimSpace(s))); o {
	case "", "none", "original", OrderIdentity:
		return OrderIdentity, nil
	case OrderReverse, OrderShuffle:
		return o, nil
	default:
		return "", apperr.New(apperr.ErrCodeInvalidInput,
			"invalid order: %q (must be 'identity', 'reverse' or 'shuffle')", s)
	}
}

// NewRand returns the generator used by [Apply] for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Apply returns a copy of items reordered according to o.
// Unknown orders behave like identity.
func Apply[T any](items []T, o Order, seed uint64) []T {
	switch o {
	case OrderReverse:
		return Reverse(items)
	case OrderShuffle:
		return Shuffle(items, NewRand(seed))
	default:
		return slices.Clone(items)
	}
}

// Reverse returns a reversed copy of items.
func Reverse[T any](items []T) []T {
	out := slices.Clone(items)
	slices.Reverse(out)
	return out
}

// Shuffle returns a copy of items permuted by rng.
func Shuffle[T any](items []T, rng *rand.Rand) []T {
	out := slices.Clone(items)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
