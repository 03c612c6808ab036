package model

// Supplier is a product supplier as listed by the upstream.
type Supplier struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductUpdate is the full replacement of an editable product.
// Date is an ISO-8601 timestamp.
type ProductUpdate struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	WholesalePrice float64 `json:"wholesalePrice"`
	RetailPrice    float64 `json:"retailPrice"`
	Quantity       int     `json:"quantity"`
	Category       string  `json:"category"`
	SupplierName   string  `json:"supplierName"`
	Date           string  `json:"date"`
}

// Categories is the fixed set of product categories offered by the store.
var Categories = []string{
	"Building and Hardware",
	"Safety Gear",
	"Paint",
	"Tools",
	"Storage",
	"Lighting",
	"Gardening",
	"Fasteners",
}
