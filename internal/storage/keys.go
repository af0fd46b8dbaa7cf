package storage

// Fixed keys of the session namespace.
const (
	KeyCart           = "cart"
	KeyWishlist       = "wishlist"
	KeyRecentlyViewed = "recentlyViewed"
	KeyBookings       = "bookings"
	KeyOrders         = "orders"
	KeyCheckout       = "checkout"
	KeyNotifications  = "notifications"
	KeyTheme          = "theme"
)
