package http

const (
	KeyHeaderContentType       = "Content-Type"
	KeyHeaderRequestID         = "X-Request-Id"
	ValueHeaderApplicationJson = "application/json"
)

const (
	ProductBaseURL = "http://product-service:8080/products"
	CartBaseURL    = "http://cart-service:8080/carts"
	OrderBaseURL   = "http://order-service:8080/orders"
	UserBaseURL    = "http://user-service:8080/users"
)
