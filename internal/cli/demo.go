package cli

import (
	"datadict/internal/dictionary"
	"datadict/internal/store"
)

// DemoDataset is the dictionary name served in demo mode.
const DemoDataset = "main.sales.data_dict"

func demoStore() *store.Memory {
	m := store.NewMemory()
	m.Put(DemoDataset, demoDictionary())
	return m
}

func demoDictionary() dictionary.Dataset {
	const p = "main.sales."
	text := dictionary.Text
	return dictionary.NewDataset(
		dictionary.Entry{Name: "customers", Parent: p + "customers", Type: "table", Description: text("One row per registered customer.")},
		dictionary.Entry{Name: "id", Parent: p + "customers", Type: "bigint", Description: text("Surrogate key.")},
		dictionary.Entry{Name: "email", Parent: p + "customers", Type: "varchar(255)"},
		dictionary.Entry{Name: "created_at", Parent: p + "customers", Type: "timestamp"},
		dictionary.Entry{Name: "orders", Parent: p + "orders", Type: "table"},
		dictionary.Entry{Name: "id", Parent: p + "orders", Type: "bigint"},
		dictionary.Entry{Name: "customer_id", Parent: p + "orders", Type: "bigint", Description: text("References customers.id.")},
		dictionary.Entry{Name: "total", Parent: p + "orders", Type: "decimal(12,2)"},
		dictionary.Entry{Name: "placed_at", Parent: p + "orders", Type: "timestamp"},
		dictionary.Entry{Name: "order_items", Parent: p + "order_items", Type: "table"},
		dictionary.Entry{Name: "order_id", Parent: p + "order_items", Type: "bigint"},
		dictionary.Entry{Name: "sku", Parent: p + "order_items", Type: "varchar(32)"},
		dictionary.Entry{Name: "quantity", Parent: p + "order_items", Type: "integer"},
	)
}
