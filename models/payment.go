package models

// CardDetails mirrors the billing fields a card token carries.
type CardDetails struct {
	Name           string `json:"name"`
	AddressLine1   string `json:"address_line1"`
	AddressLine2   string `json:"address_line2"`
	AddressCity    string `json:"address_city"`
	AddressCountry string `json:"address_country"`
	AddressZip     string `json:"address_zip"`
}

// PaymentToken identifies the payment method supplied by the client.
type PaymentToken struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Card  CardDetails `json:"card"`
}

// PaymentRequest is the payload for POST /patient/payment.
type PaymentRequest struct {
	FinalBalance float64      `json:"finalBalance"`
	Token        PaymentToken `json:"token"`
}

// ChargeResult is the outcome of a successful charge.
type ChargeResult struct {
	ID         string `json:"id"`
	CustomerID string `json:"customerId"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
	Status     string `json:"status"`
}
