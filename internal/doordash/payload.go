package doordash

import (
	"github.com/pkg/errors"

	"doordash-adapter/internal/model"
)

// DeliveryPayload is the body of POST /drive/v2/deliveries.
type DeliveryPayload struct {
	ExternalDeliveryID  string        `json:"external_delivery_id"`
	PickupAddress       string        `json:"pickup_address"`
	PickupBusinessName  string        `json:"pickup_business_name"`
	PickupPhoneNumber   string        `json:"pickup_phone_number"`
	DropoffAddress      string        `json:"dropoff_address"`
	DropoffBusinessName string        `json:"dropoff_business_name"`
	DropoffPhoneNumber  string        `json:"dropoff_phone_number"`
	DropoffInstructions string        `json:"dropoff_instructions"`
	OrderValue          int64         `json:"order_value"`
	Items               []PayloadItem `json:"items"`
}

type PayloadItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"price"`
}

// BuildDeliveryPayload maps a POS order onto the provider schema. Money
// fields become integer cents, truncated.
func BuildDeliveryPayload(o model.OrderRequest) (DeliveryPayload, error) {
	total, err := model.MinorUnits(o.TotalAmount)
	if err != nil {
		return DeliveryPayload{}, errors.Wrap(err, "total_amount")
	}
	items := make([]PayloadItem, 0, len(o.Items))
	for i, it := range o.Items {
		price, err := model.MinorUnits(it.Price)
		if err != nil {
			return DeliveryPayload{}, errors.Wrapf(err, "items[%d].price", i)
		}
		items = append(items, PayloadItem{
			Name:        it.Name,
			Description: it.Description,
			Quantity:    it.Quantity,
			Price:       price,
		})
	}
	return DeliveryPayload{
		ExternalDeliveryID:  o.OrderID,
		PickupAddress:       o.PickupAddress,
		PickupBusinessName:  o.RestaurantName,
		PickupPhoneNumber:   o.RestaurantPhone,
		DropoffAddress:      o.DeliveryAddress.Street,
		DropoffBusinessName: o.Customer.Name,
		DropoffPhoneNumber:  o.Customer.Phone,
		DropoffInstructions: o.SpecialInstructions,
		OrderValue:          total,
		Items:               items,
	}, nil
}
