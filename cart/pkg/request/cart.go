package request

type AddCartItem struct {
	Slug     string `validate:"required"       json:"slug"`
	Quantity int32  `validate:"required,gte=1" json:"quantity"`
}

type UpdateCartItemQuantity struct {
	Quantity int32 `validate:"required,gte=1" json:"quantity"`
}

type SaveShippingAddress struct {
	FullName   string `json:"fullName"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type SavePaymentMethod struct {
	PaymentMethod string `validate:"required" json:"paymentMethod"`
}
