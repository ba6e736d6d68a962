package venue

import "time"

// PrimeBroker is a credit intermediary on the venue. At most one broker is
// flagged central; the central broker extends credit lines to the others.
type PrimeBroker struct {
	ID        string
	Name      string
	IsCentral bool
}

// Customer is a client entity (hedge fund, asset manager) trading on the venue.
type Customer struct {
	ID          string
	Name        string
	Description string
}

// Session links one customer to one prime broker. Protocol is descriptive
// only (e.g. "FIX 4.4") and plays no part in resolution.
type Session struct {
	ID         string
	CustomerID string
	BrokerID   string
	Protocol   string
}

// CreditEntry is a customer's credit limit and current exposure. The credit
// vendor replaces these wholesale between runs. Exposure above limit is a
// breach condition, not malformed data.
type CreditEntry struct {
	CustomerID  string
	Limit       float64
	Exposure    float64
	Currency    string
	LastUpdated time.Time
}

// CreditLine is the credit a non-central prime broker holds with the central
// prime broker. Clients of a non-central broker reach the venue through it.
type CreditLine struct {
	BrokerID        string
	CentralBrokerID string
	Limit           float64
	Currency        string
	LastUpdated     time.Time
}
