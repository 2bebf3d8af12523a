package store

import (
	"context"

	"github.com/jithpillai/zstore/cart/pkg/state"
)

// Store is the cart persistence port. Load returns an empty cart when no
// snapshot exists; Save is called after every reduction, Clear on logout
// and after checkout.
type Store interface {
	Load(c context.Context) (state.Cart, error)
	Save(c context.Context, cart state.Cart) error
	Clear(c context.Context) error
}
