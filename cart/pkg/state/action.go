package state

// Action is a cart mutation handled by Reduce. The concrete types below
// are the only implementations.
type Action interface {
	actionName() string
}

type AddItem struct {
	Item CartItem
}

type RemoveItem struct {
	Slug string
}

type UpdateItemQuantity struct {
	Slug     string
	Quantity int32
}

type ClearItems struct{}

type SaveShippingAddress struct {
	Address ShippingAddress
}

type SavePaymentMethod struct {
	Method string
}

type Reset struct{}

func (AddItem) actionName() string             { return "ADD_ITEM" }
func (RemoveItem) actionName() string          { return "REMOVE_ITEM" }
func (UpdateItemQuantity) actionName() string  { return "UPDATE_ITEM_QTY" }
func (ClearItems) actionName() string          { return "CLEAR_ITEMS" }
func (SaveShippingAddress) actionName() string { return "SAVE_SHIPPING_ADDRESS" }
func (SavePaymentMethod) actionName() string   { return "SAVE_PAYMENT_METHOD" }
func (Reset) actionName() string               { return "RESET" }
