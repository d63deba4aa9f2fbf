package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestReadDoc_ValidJSONPerInstance(t *testing.T) {
	cases := map[string][]string{
		ProductsInstance: {"/products", "/products/search", "/products/{id}"},
		OrdersInstance:   {"/orders", "/orders/{id}", "/orders/{id}/products", "/orders/customer/{customer_id}"},
	}
	for name, paths := range cases {
		doc, err := swag.ReadDoc(name)
		require.NoError(t, err, name)

		var parsed struct {
			Swagger string                    `json:"swagger"`
			Paths   map[string]map[string]any `json:"paths"`
		}
		require.NoError(t, json.Unmarshal([]byte(doc), &parsed), name)
		require.Equal(t, "2.0", parsed.Swagger)
		for _, p := range paths {
			require.Contains(t, parsed.Paths, p, "%s: falta %s", name, p)
		}
	}
}
