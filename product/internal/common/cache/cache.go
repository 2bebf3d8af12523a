package cache

const (
	KeyProducts       = "products:%s"
	KeyProductsFilter = "products:filter:%s"
)
