package constants

const (
	AppMainZstore     = "zstore"
	AppCartService    = "cart-service"
	AppOrderService   = "order-service"
	AppProductService = "product-service"
	AppUserService    = "user-service"
	AudienceUser      = "audience-user"
)
