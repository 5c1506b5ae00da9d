package model

import "time"

// Contact identifies the person placing the order.
type Contact struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
}

// CheckoutRequest carries everything needed to place an order.
type CheckoutRequest struct {
	BuyerTaxID string
	Cart       []CartLine
	Term       *int
	Contact    Contact
}

// Order is a locally recorded order accepted by the credit provider.
type Order struct {
	ID              int64
	Contact         Contact
	ExternalOrderID string
	Items           []OrderItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem links an order to a catalog product.
type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	SKU       string
	Quantity  int
}

// OrderFromSubmission rebuilds the local order for an accepted submission.
func OrderFromSubmission(sub *OrderSubmission, externalOrderID string) *Order {
	order := &Order{
		Contact: Contact{
			FirstName: sub.Contact.Name,
			LastName:  sub.Contact.LastName,
			Phone:     sub.Contact.Phone,
			Email:     sub.Contact.Email,
		},
		ExternalOrderID: externalOrderID,
		Items:           make([]OrderItem, 0, len(sub.Items)),
	}
	for _, item := range sub.Items {
		order.Items = append(order.Items, OrderItem{SKU: item.ProductID, Quantity: item.Quantity})
	}
	return order
}
