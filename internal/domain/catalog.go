package domain

import (
	"fmt"
	"strings"
)

type Category struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Price       string   `json:"price"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Photos      []string `json:"photos,omitempty"`
}

const displayNamePrefix = "✅ €"

// DisplayName builds the button label for a product. A label produced by a
// previous run ("✅ €10 | Widget") is stripped back to the raw name first, so
// re-applying the transform never stacks prefixes.
func DisplayName(price, name string) string {
	if strings.HasPrefix(name, displayNamePrefix) {
		if _, rest, ok := strings.Cut(name, "|"); ok {
			name = strings.TrimSpace(rest)
		}
	}
	return fmt.Sprintf("%s%s | %s", displayNamePrefix, price, name)
}
