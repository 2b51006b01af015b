package doordash

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doordash-adapter/internal/model"
)

func sampleOrder() model.OrderRequest {
	return model.OrderRequest{
		OrderID:             "ord-1",
		PickupAddress:       "1 Market St",
		RestaurantName:      "Taco Stand",
		RestaurantPhone:     "+15550001",
		DeliveryAddress:     model.DeliveryAddress{Street: "9 Elm St"},
		Customer:            model.Customer{Name: "Sam", Phone: "+15550002"},
		SpecialInstructions: "ring twice",
		TotalAmount:         "19.99",
		Items: []model.LineItem{
			{Name: "Taco", Quantity: 2, Price: "9.99"},
		},
	}
}

func TestBuildDeliveryPayload(t *testing.T) {
	p, err := BuildDeliveryPayload(sampleOrder())
	require.NoError(t, err)

	assert.Equal(t, "ord-1", p.ExternalDeliveryID)
	assert.Equal(t, "Taco Stand", p.PickupBusinessName)
	assert.Equal(t, "+15550001", p.PickupPhoneNumber)
	assert.Equal(t, "9 Elm St", p.DropoffAddress)
	assert.Equal(t, "Sam", p.DropoffBusinessName)
	assert.Equal(t, "+15550002", p.DropoffPhoneNumber)
	assert.Equal(t, "ring twice", p.DropoffInstructions)
	assert.EqualValues(t, 1999, p.OrderValue)
	require.Len(t, p.Items, 1)
	assert.EqualValues(t, 999, p.Items[0].Price)
	assert.Equal(t, 2, p.Items[0].Quantity)
}

func TestBuildDeliveryPayloadOptionalFieldsAreEmptyStrings(t *testing.T) {
	o := sampleOrder()
	o.SpecialInstructions = ""
	p, err := BuildDeliveryPayload(o)
	require.NoError(t, err)

	b, err := json.Marshal(p)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "", m["dropoff_instructions"])
	item := m["items"].([]any)[0].(map[string]any)
	assert.Equal(t, "", item["description"])
}

func TestBuildDeliveryPayloadBadPrice(t *testing.T) {
	o := sampleOrder()
	o.Items[0].Price = "-1"
	_, err := BuildDeliveryPayload(o)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "items[0].price")
}
