package orders

import (
	"github.com/pkg/errors"

	"doordash-adapter/internal/model"
)

// validateOrderRequest catches orders the provider can never accept before a
// call is spent on them. Amounts are checked during minor-unit conversion.
// special_instructions and item descriptions are the only optional fields.
func validateOrderRequest(o *model.OrderRequest) error {
	required := []struct {
		field, value string
	}{
		{"order_id", o.OrderID},
		{"pickup_address", o.PickupAddress},
		{"restaurant_name", o.RestaurantName},
		{"restaurant_phone", o.RestaurantPhone},
		{"delivery_address.street", o.DeliveryAddress.Street},
		{"customer.name", o.Customer.Name},
		{"customer.phone", o.Customer.Phone},
	}
	for _, r := range required {
		if r.value == "" {
			return errors.Errorf("%s is required", r.field)
		}
	}
	// An absent or null items key decodes to nil; an explicit [] is an order
	// with no line items.
	if o.Items == nil {
		return errors.New("items is required")
	}
	for i, it := range o.Items {
		if it.Name == "" {
			return errors.Errorf("items[%d].name is required", i)
		}
		if it.Quantity < 0 {
			return errors.Errorf("items[%d].quantity must be >= 0", i)
		}
	}
	return nil
}
