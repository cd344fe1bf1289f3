package main

import (
	"aether-be/internal/product"

	"github.com/shopspring/decimal"
)

// demoCatalog is the storefront's starter inventory, keyed by SKU.
var demoCatalog = []product.NewProduct{
	{
		Name:        "Laptop Gamer Asus TUF F15",
		Description: "Potente laptop con procesador i9, RTX 4080 y 32GB RAM. Ideal para gaming y trabajo pesado.",
		Price:       decimal.RequireFromString("26800.00"),
		SKU:         "TECH-LAP-001",
		Stock:       15,
		Category:    "Computación",
		Images:      []string{"https://www.asus.com/media/global/gallery/63nq57jtwcnkqduo_setting_xxx_0_90_end_800.png"},
	},
	{
		Name:        "Samsung S25 Ultra 5G",
		Description: "Pantalla AMOLED 120Hz, cámara de 200MP y batería de larga duración.",
		Price:       decimal.RequireFromString("22999.00"),
		SKU:         "TECH-PHN-002",
		Stock:       50,
		Category:    "Telefonía",
		Images:      []string{"https://images.samsung.com/is/image/samsung/p6pim/mx/2501/gallery/mx-galaxy-s25-s938-sm-s938bzbvltm-544706905?imbypass=true"},
	},
	{
		Name:        "Sony WH-1000XM5",
		Description: "Sonido de alta fidelidad con cancelación de ruido activa y 30 horas de batería.",
		Price:       decimal.RequireFromString("5499.00"),
		SKU:         "TECH-AUD-003",
		Stock:       80,
		Category:    "Audio",
		Images:      []string{"https://m.media-amazon.com/images/I/61ULAZmt9NL._AC_SX522_.jpg"},
	},
	{
		Name:        "Apple Watch Series 10 42 mm",
		Description: "Monitoreo de salud avanzado, GPS integrado y resistencia al agua.",
		Price:       decimal.RequireFromString("8999.00"),
		SKU:         "TECH-WCH-004",
		Stock:       30,
		Category:    "Wearables",
		Images:      []string{"https://www.macstoreonline.com.mx/img/sku/WATCH454_Z1.webp"},
	},
	{
		Name:        "Monitor 4K UltraWide",
		Description: "34 pulgadas, panel IPS, tasa de refresco de 144Hz. Perfecto para productividad.",
		Price:       decimal.RequireFromString("12500.00"),
		SKU:         "TECH-MON-005",
		Stock:       20,
		Category:    "Periféricos",
		Images:      []string{"https://images.unsplash.com/photo-1527443224154-c4a3942d3acf?auto=format&fit=crop&w=800&q=80"},
	},
	{
		Name:        "Teclado Mecánico RGB",
		Description: "Switches Cherry MX Blue, retroiluminación personalizable y chasis de aluminio.",
		Price:       decimal.RequireFromString("3200.00"),
		SKU:         "TECH-KBD-006",
		Stock:       75,
		Category:    "Periféricos",
		Images:      []string{"https://ddtech.mx/assets/uploads/f35597eb88a3427b1400ebaee8a1034f.png"},
	},
}
