package repository

import (
	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/catalog/model"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func oldPrice(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func rating(r float64) *float64 {
	return &r
}

// SeedCategories returns the shop categories
func SeedCategories() []model.Category {
	return []model.Category{
		{ID: "1", Name: "Laços", Slug: "lacos", Image: "https://picsum.photos/id/103/400/400"},
		{ID: "2", Name: "Tiaras", Slug: "tiaras", Image: "https://picsum.photos/id/65/400/400"},
		{ID: "3", Name: "Faixas Baby", Slug: "faixas", Image: "https://picsum.photos/id/106/400/400"},
		{ID: "4", Name: "Kits", Slug: "kits", Image: "https://picsum.photos/id/112/400/400"},
		{ID: "5", Name: "Acessórios", Slug: "acessorios", Image: "https://picsum.photos/id/400/400/400"},
	}
}

// SeedProducts returns the default product list, newest first
func SeedProducts() []model.Product {
	return []model.Product{
		{
			ID:          "1",
			Slug:        "laco-veludo-bordeaux",
			Name:        "Laço Veludo Bordeaux",
			Description: "Um laço clássico em veludo premium, perfeito para ocasiões especiais de inverno.",
			Price:       price("45.90"),
			Category:    "Lacos",
			Images: []string{
				"https://picsum.photos/id/250/800/800",
				"https://picsum.photos/id/237/800/800",
				"https://picsum.photos/id/252/800/800",
			},
			Colors:     []string{"#800020", "#000000", "#f5f5dc"},
			IsFeatured: true,
			Rating:     rating(5),
		},
		{
			ID:          "2",
			Slug:        "tiara-jardim-encantado",
			Name:        "Tiara Jardim Encantado",
			Description: "Tiara bordada à mão com pérolas e flores de seda.",
			Price:       price("89.90"),
			OldPrice:    oldPrice("110.00"),
			Category:    "Tiaras",
			Images: []string{
				"https://picsum.photos/id/360/800/800",
				"https://picsum.photos/id/364/800/800",
			},
			Colors:     []string{"#ffc0cb", "#ffffff"},
			IsFeatured: true,
			IsOnSale:   true,
			Rating:     rating(4.8),
		},
		{
			ID:          "3",
			Slug:        "faixa-baby-silk",
			Name:        "Faixinha Baby Silk",
			Description: "O conforto que sua bebê merece. Meia de seda que não aperta.",
			Price:       price("29.90"),
			Category:    "Faixas",
			Images: []string{
				"https://picsum.photos/id/102/800/800",
				"https://picsum.photos/id/104/800/800",
				"https://picsum.photos/id/108/800/800",
			},
			Colors: []string{"#f8bbd0", "#e1bee7", "#b2dfdb"},
			IsNew:  true,
			Rating: rating(5),
		},
		{
			ID:          "4",
			Slug:        "maxi-laco-linho",
			Name:        "Maxi Laço em Linho",
			Description: "Rústico e chique. O laço de linho traz sofisticação natural.",
			Price:       price("49.00"),
			OldPrice:    oldPrice("55.00"),
			Category:    "Lacos",
			Images: []string{
				"https://picsum.photos/id/201/800/800",
				"https://picsum.photos/id/202/800/800",
			},
			Colors:     []string{"#d7ccc8", "#a1887f"},
			IsFeatured: true,
			IsOnSale:   true,
			Rating:     rating(4.9),
		},
		{
			ID:          "5",
			Slug:        "kit-semaninha-escolar",
			Name:        "Kit Semaninha Escolar",
			Description: "7 laços pequenos nas cores do uniforme. Praticidade para o dia a dia.",
			Price:       price("120.00"),
			Category:    "Kits",
			Images: []string{
				"https://picsum.photos/id/349/800/800",
				"https://picsum.photos/id/348/800/800",
			},
			Colors: []string{"#1e88e5", "#e53935"},
			Rating: rating(4.7),
		},
		{
			ID:          "6",
			Slug:        "grampos-pompom",
			Name:        "Par de Grampos Pompom",
			Description: "Divertidos e coloridos para prender a franjinha.",
			Price:       price("18.90"),
			Category:    "Acessorios",
			Images:      []string{"https://picsum.photos/id/400/800/800"},
			Colors:      []string{"#f48fb1"},
			Rating:      rating(4.5),
		},
		{
			ID:          "7",
			Slug:        "laco-organza-cristal",
			Name:        "Laço Organza Cristal",
			Description: "Leveza e transparência. Ideal para batizados e festas diurnas.",
			Price:       price("38.00"),
			OldPrice:    oldPrice("45.00"),
			Category:    "Lacos",
			Images: []string{
				"https://picsum.photos/id/305/800/800",
				"https://picsum.photos/id/306/800/800",
			},
			Colors:   []string{"#ffffff", "#ffeb3b"},
			IsOnSale: true,
			Rating:   rating(5.0),
		},
		{
			ID:          "8",
			Slug:        "tiara-turbante-veludo",
			Name:        "Tiara Turbante Veludo",
			Description: "Estilo e conforto para os dias mais frios.",
			Price:       price("59.90"),
			Category:    "Tiaras",
			Images: []string{
				"https://picsum.photos/id/430/800/800",
				"https://picsum.photos/id/431/800/800",
			},
			Colors: []string{"#000000", "#881337"},
			Rating: rating(4.6),
		},
	}
}
