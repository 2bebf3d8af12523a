package cache

const (
	KeyOrders         = "orders:%s"
	KeyOrdersByUserId = "orders:user_id:%s"
)
