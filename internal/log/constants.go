package log

const (
	KeyAppName            = "app"
	KeyRequestID          = "requestId"
	KeyProcess            = "process"
	KeyTag                = "tag"
	KeyConfig             = "config"
	KeyToken              = "token"
	KeyEmail              = "email"
	KeyUserID             = "userId"
	KeyOrderID            = "orderId"
	KeyOrderStatus        = "orderStatus"
	KeyPaymentID          = "paymentId"
	KeyProductID          = "productId"
	KeyProductSlug        = "productSlug"
	KeyCart               = "cart"
	KeyCartItems          = "cartItems"
	KeyOrderItems         = "orderItems"
	KeyCacheKey           = "cacheKey"
	KeyDbURL              = "dbUrl"
	KeyPathValues         = "pathValues"
	KeyRequestBody        = "requestBody"
	KeyRequestHeader      = "requestHeader"
	KeyRequestHost        = "host"
	KeyRequestIp          = "requesterIP"
	KeyRequestMethod      = "requestMethod"
	KeyRequestURI         = "requestURI"
	KeyRequestURL         = "requestURL"
	KeyTraceID            = "traceId"
	KeySpanID             = "spanId"
)
