package domain

import (
	"strings"
	"time"
)

// Temperature is the storage temperature class of a product.
type Temperature string

const (
	TemperatureFrozen       Temperature = "frozen"
	TemperatureRefrigerated Temperature = "refrigerated"
	TemperatureAmbient      Temperature = "ambient"
	TemperatureWarm         Temperature = "warm"
	TemperatureHot          Temperature = "hot"
)

var temperatures = map[Temperature]struct{}{
	TemperatureFrozen:       {},
	TemperatureRefrigerated: {},
	TemperatureAmbient:      {},
	TemperatureWarm:         {},
	TemperatureHot:          {},
}

// ParseTemperature matches s case-insensitively. Unlike roles, an unknown
// temperature is rejected because there is no safe default.
func ParseTemperature(s string) (Temperature, error) {
	t := Temperature(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := temperatures[t]; !ok {
		return "", &ValidationError{Field: "temperature", Reason: "must be one of: frozen, refrigerated, ambient, warm, hot"}
	}
	return t, nil
}

// Product is an item that stores can stock.
type Product struct {
	ID          string      `json:"id" bson:"_id"`
	Name        string      `json:"name" bson:"name"`
	Description string      `json:"description" bson:"description"`
	Size        string      `json:"size" bson:"size"`
	Category    string      `json:"category" bson:"category"`
	Price       float64     `json:"price" bson:"price"`
	Temperature Temperature `json:"temperature" bson:"temperature"`
	CreatedAt   time.Time   `json:"created_at" bson:"created_at"`
}

func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// CustomerType distinguishes walk-in guests from registered shoppers.
type CustomerType string

const (
	CustomerGuest      CustomerType = "guest"
	CustomerRegistered CustomerType = "registered"
)

func ParseCustomerType(s string) (CustomerType, error) {
	switch t := CustomerType(strings.ToLower(strings.TrimSpace(s))); t {
	case CustomerGuest, CustomerRegistered:
		return t, nil
	default:
		return "", &ValidationError{Field: "type", Reason: "must be one of: guest, registered"}
	}
}

// Customer is a shopper known to the system.
type Customer struct {
	ID             string       `json:"id" bson:"_id"`
	FirstName      string       `json:"first_name" bson:"first_name"`
	LastName       string       `json:"last_name" bson:"last_name"`
	Type           CustomerType `json:"type" bson:"type"`
	Email          string       `json:"email" bson:"email"`
	AccountAddress string       `json:"account_address" bson:"account_address"`
	LastSeen       time.Time    `json:"last_seen" bson:"last_seen"`
}

func (c *Customer) Clone() *Customer {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
