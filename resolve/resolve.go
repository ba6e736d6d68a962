// Package resolve answers the questions a desk asks of loaded credit
// data: which broker a session routes to, what a customer's credit
// standing is, and how much of a broker's line is committed.
package resolve

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/fxcredit/venue"
)

// Record kinds carried by NotFoundError.
const (
	KindSession     = "session"
	KindBroker      = "broker"
	KindCustomer    = "customer"
	KindCreditEntry = "credit_entry"
	KindCreditLine  = "credit_line"
)

// NotFoundError reports a failed lookup, carrying the kind of record
// that was missing so callers can phrase their own response.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// NotFoundKind returns the missing record kind, or "" when err is not a
// NotFoundError.
func NotFoundKind(err error) string {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf.Kind
	}
	return ""
}

// Status of an exposure measured against its limit. Customer checks
// report within_limit or breach, broker line checks within_line or
// overcommitted.
type Status string

const (
	StatusWithinLimit Status = "within_limit"
	StatusBreach      Status = "breach"

	StatusWithinLine    Status = "within_line"
	StatusOvercommitted Status = "overcommitted"
)

func statusOf(used, limit float64) Status {
	if used > limit {
		return StatusBreach
	}
	return StatusWithinLimit
}

// BrokerForSession resolves the prime broker a session routes orders to.
func BrokerForSession(reg *venue.Registry, sessionID string) (venue.PrimeBroker, error) {
	s, ok := reg.Sessions[sessionID]
	if !ok {
		return venue.PrimeBroker{}, &NotFoundError{Kind: KindSession, ID: sessionID}
	}
	b, ok := reg.Brokers[s.BrokerID]
	if !ok {
		return venue.PrimeBroker{}, &NotFoundError{Kind: KindBroker, ID: s.BrokerID}
	}
	return b, nil
}

// SessionDetail bundles a session with both records it references.
type SessionDetail struct {
	Session  venue.Session
	Customer venue.Customer
	Broker   venue.PrimeBroker
}

// Session resolves a session together with its customer and broker.
func Session(reg *venue.Registry, sessionID string) (SessionDetail, error) {
	s, ok := reg.Sessions[sessionID]
	if !ok {
		return SessionDetail{}, &NotFoundError{Kind: KindSession, ID: sessionID}
	}
	c, ok := reg.Customers[s.CustomerID]
	if !ok {
		return SessionDetail{}, &NotFoundError{Kind: KindCustomer, ID: s.CustomerID}
	}
	b, ok := reg.Brokers[s.BrokerID]
	if !ok {
		return SessionDetail{}, &NotFoundError{Kind: KindBroker, ID: s.BrokerID}
	}
	return SessionDetail{Session: s, Customer: c, Broker: b}, nil
}

// CreditLimit returns the credit entry recorded for a customer.
func CreditLimit(reg *venue.Registry, customerID string) (venue.CreditEntry, error) {
	e, ok := reg.Credit[customerID]
	if !ok {
		return venue.CreditEntry{}, &NotFoundError{Kind: KindCreditEntry, ID: customerID}
	}
	return e, nil
}

// ExposureResult is the outcome of measuring a customer's exposure
// against its credit limit. Headroom is signed: negative means breach.
type ExposureResult struct {
	CustomerID string
	Currency   string
	Limit      float64
	Exposure   float64
	Headroom   float64
	Status     Status
}

// Exposure validates a customer's current exposure against its limit.
// Exposure equal to the limit still counts as within it.
func Exposure(reg *venue.Registry, customerID string) (ExposureResult, error) {
	e, err := CreditLimit(reg, customerID)
	if err != nil {
		return ExposureResult{}, err
	}
	return ExposureResult{
		CustomerID: e.CustomerID,
		Currency:   e.Currency,
		Limit:      e.Limit,
		Exposure:   e.Exposure,
		Headroom:   e.Limit - e.Exposure,
		Status:     statusOf(e.Exposure, e.Limit),
	}, nil
}

// BrokerExposureResult aggregates the credit a broker has issued to its
// session customers against the line its central broker grants it.
type BrokerExposureResult struct {
	BrokerID        string
	CentralBrokerID string
	Currency        string
	Line            float64
	Issued          float64
	Customers       int
	Available       float64
	Utilization     float64
	Status          Status
}

// BrokerExposure measures how much of a broker's line is committed.
// Central brokers extend lines rather than hold one, so asking about a
// central broker is an error.
func BrokerExposure(reg *venue.Registry, brokerID string) (BrokerExposureResult, error) {
	b, ok := reg.Brokers[brokerID]
	if !ok {
		return BrokerExposureResult{}, &NotFoundError{Kind: KindBroker, ID: brokerID}
	}
	if b.IsCentral {
		return BrokerExposureResult{}, fmt.Errorf("broker %q is central and holds no line of its own", brokerID)
	}
	line, ok := reg.Lines[brokerID]
	if !ok {
		return BrokerExposureResult{}, &NotFoundError{Kind: KindCreditLine, ID: brokerID}
	}

	issued, customers := reg.IssuedCredit(brokerID)
	status := StatusWithinLine
	if issued > line.Limit {
		status = StatusOvercommitted
	}
	res := BrokerExposureResult{
		BrokerID:        brokerID,
		CentralBrokerID: line.CentralBrokerID,
		Currency:        line.Currency,
		Line:            line.Limit,
		Issued:          issued,
		Customers:       customers,
		Available:       line.Limit - issued,
		Status:          status,
	}
	if line.Limit > 0 {
		res.Utilization = issued / line.Limit
	}
	return res, nil
}
