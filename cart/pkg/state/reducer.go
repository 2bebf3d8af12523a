package state

// Reduce maps the current cart and an action to the next cart. It never
// mutates its input; callers persist the returned snapshot themselves.
func Reduce(cart Cart, action Action) Cart {
	switch act := action.(type) {
	case AddItem:
		items := make([]CartItem, len(cart.CartItems))
		copy(items, cart.CartItems)
		replaced := false
		for i, item := range items {
			if item.Slug == act.Item.Slug {
				items[i] = act.Item
				replaced = true
				break
			}
		}
		if !replaced {
			items = append(items, act.Item)
		}
		cart.CartItems = items
		return cart
	case RemoveItem:
		items := make([]CartItem, 0, len(cart.CartItems))
		for _, item := range cart.CartItems {
			if item.Slug == act.Slug {
				continue
			}
			items = append(items, item)
		}
		cart.CartItems = items
		return cart
	case UpdateItemQuantity:
		items := make([]CartItem, len(cart.CartItems))
		copy(items, cart.CartItems)
		for i, item := range items {
			if item.Slug == act.Slug {
				items[i].Quantity = act.Quantity
				break
			}
		}
		cart.CartItems = items
		return cart
	case ClearItems:
		cart.CartItems = []CartItem{}
		return cart
	case SaveShippingAddress:
		cart.ShippingAddress = mergeAddress(cart.ShippingAddress, act.Address)
		return cart
	case SavePaymentMethod:
		cart.PaymentMethod = act.Method
		return cart
	case Reset:
		return Cart{CartItems: []CartItem{}}
	}
	return cart
}

func mergeAddress(existing, incoming ShippingAddress) ShippingAddress {
	if incoming.FullName != "" {
		existing.FullName = incoming.FullName
	}
	if incoming.Address != "" {
		existing.Address = incoming.Address
	}
	if incoming.City != "" {
		existing.City = incoming.City
	}
	if incoming.PostalCode != "" {
		existing.PostalCode = incoming.PostalCode
	}
	if incoming.Country != "" {
		existing.Country = incoming.Country
	}
	return existing
}
