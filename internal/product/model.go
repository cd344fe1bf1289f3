package product

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const imageSeparator = ","

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	SKU         string          `json:"sku"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	Images      []string        `json:"images"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type NewProduct struct {
	Name        string
	Description string
	Price       decimal.Decimal
	SKU         string
	Stock       int
	Category    string
	Images      []string
}

// JoinImages flattens an image list into its stored form. Blank entries are
// dropped.
func JoinImages(images []string) string {
	kept := make([]string, 0, len(images))
	for _, img := range images {
		img = strings.TrimSpace(img)
		if img == "" {
			continue
		}
		kept = append(kept, img)
	}
	return strings.Join(kept, imageSeparator)
}

func SplitImages(stored string) []string {
	images := []string{}
	for _, img := range strings.Split(stored, imageSeparator) {
		img = strings.TrimSpace(img)
		if img != "" {
			images = append(images, img)
		}
	}
	return images
}
