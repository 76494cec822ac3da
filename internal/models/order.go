package models

import "time"

const GuestClientName = "Guest"

// Order is a confirmed booking. Menu name, price and item names are copied at
// confirmation time and never re-resolved.
type Order struct {
	ID            string   `json:"id"`
	ClientName    string   `json:"clientName"`
	ClientPhone   string   `json:"clientPhone"`
	ClientAddress string   `json:"clientAddress"`
	MenuID        string   `json:"menuId,omitempty"`
	MenuName      string   `json:"menuName"`
	MenuPrice     float64  `json:"menuPrice"`
	Items         []string `json:"items"`
	Quantity      int      `json:"quantity"`
	TotalAmount   float64  `json:"totalAmount"`
	Date          string   `json:"date"`
}

// Time parses Date. Orders written by other tools may carry odd dates; those
// report ok=false.
func (o Order) Time() (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.000Z07:00", "2006-01-02"} {
		if t, err := time.Parse(layout, o.Date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// OrderForm is the order entry form the draft is derived from.
type OrderForm struct {
	MenuID        string `json:"menuId"`
	Quantity      int    `json:"quantity"`
	ClientName    string `json:"clientName"`
	ClientPhone   string `json:"clientPhone"`
	ClientAddress string `json:"clientAddress"`
}

func DefaultOrderForm() OrderForm {
	return OrderForm{Quantity: 1}
}
