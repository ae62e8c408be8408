// Package cart holds the guest-side cart: variant-aware line keys, quantity
// operations, pricing and persistence keyed by restaurant and table.
package cart

import "strings"

// Key identifies a cart line. Plain items use their menu id, variants use
// "menuID:variantName".
func Key(menuID, variantName string) string {
	if variantName == "" {
		return menuID
	}
	return menuID + ":" + variantName
}

// ParseKey splits a line key on the first colon.
func ParseKey(key string) (menuID, variantName string) {
	menuID, variantName, _ = strings.Cut(key, ":")
	return menuID, variantName
}
