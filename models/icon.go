package models

// Icon identifies the glyph a client should render for a service. The set is
// closed on the server side; anything the catalog stores outside it resolves
// to IconCode.
type Icon string

const (
	IconCode            Icon = "Code"
	IconShoppingCart    Icon = "ShoppingCart"
	IconMessageSquare   Icon = "MessageSquare"
	IconBot             Icon = "Bot"
	IconSmartphone      Icon = "Smartphone"
	IconLayoutDashboard Icon = "LayoutDashboard"
	IconBlocks          Icon = "Blocks"
)

// ResolveIcon maps a stored icon key to a known Icon, defaulting to IconCode
// for unknown keys.
func ResolveIcon(key string) Icon {
	switch Icon(key) {
	case IconCode, IconShoppingCart, IconMessageSquare, IconBot,
		IconSmartphone, IconLayoutDashboard, IconBlocks:
		return Icon(key)
	default:
		return IconCode
	}
}
