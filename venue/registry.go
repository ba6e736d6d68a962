package venue

import "sort"

// Registry holds the four loaded tables, keyed by natural id. It is built
// once by the loader and treated as immutable afterwards; validators and
// resolvers receive it explicitly rather than reading shared state, so tests
// can run several independent data sets side by side.
type Registry struct {
	Brokers   map[string]PrimeBroker
	Customers map[string]Customer
	Sessions  map[string]Session
	Credit    map[string]CreditEntry // keyed by customer id
	Lines     map[string]CreditLine  // keyed by non-central broker id
}

func NewRegistry() *Registry {
	return &Registry{
		Brokers:   make(map[string]PrimeBroker),
		Customers: make(map[string]Customer),
		Sessions:  make(map[string]Session),
		Credit:    make(map[string]CreditEntry),
		Lines:     make(map[string]CreditLine),
	}
}

// Counts reports table sizes for the load status line.
type Counts struct {
	Brokers       int
	Customers     int
	Sessions      int
	CreditEntries int
	CreditLines   int
}

func (r *Registry) Counts() Counts {
	return Counts{
		Brokers:       len(r.Brokers),
		Customers:     len(r.Customers),
		Sessions:      len(r.Sessions),
		CreditEntries: len(r.Credit),
		CreditLines:   len(r.Lines),
	}
}

// CentralBrokers returns every broker flagged central, sorted by id.
// A consistent data set has exactly one; the validator reports anything else.
func (r *Registry) CentralBrokers() []PrimeBroker {
	var out []PrimeBroker
	for _, id := range r.BrokerIDs() {
		if b := r.Brokers[id]; b.IsCentral {
			out = append(out, b)
		}
	}
	return out
}

// SessionsForCustomer returns the customer's sessions sorted by session id.
func (r *Registry) SessionsForCustomer(customerID string) []Session {
	var out []Session
	for _, id := range r.SessionIDs() {
		if s := r.Sessions[id]; s.CustomerID == customerID {
			out = append(out, s)
		}
	}
	return out
}

// SessionsForBroker returns the sessions routed through the broker, sorted
// by session id.
func (r *Registry) SessionsForBroker(brokerID string) []Session {
	var out []Session
	for _, id := range r.SessionIDs() {
		if s := r.Sessions[id]; s.BrokerID == brokerID {
			out = append(out, s)
		}
	}
	return out
}

// Clone returns a deep copy, letting callers explore changes without
// touching the loaded data.
func (r *Registry) Clone() *Registry {
	out := NewRegistry()
	for k, v := range r.Brokers {
		out.Brokers[k] = v
	}
	for k, v := range r.Customers {
		out.Customers[k] = v
	}
	for k, v := range r.Sessions {
		out.Sessions[k] = v
	}
	for k, v := range r.Credit {
		out.Credit[k] = v
	}
	for k, v := range r.Lines {
		out.Lines[k] = v
	}
	return out
}

// IssuedCredit sums the credit limits of customers holding at least one
// session through the broker, i.e. the credit the broker has extended to
// its clients. Customers without a credit entry contribute zero but are
// still counted.
func (r *Registry) IssuedCredit(brokerID string) (total float64, customers int) {
	seen := make(map[string]bool)
	for _, s := range r.SessionsForBroker(brokerID) {
		if seen[s.CustomerID] {
			continue
		}
		seen[s.CustomerID] = true
		customers++
		if e, ok := r.Credit[s.CustomerID]; ok {
			total += e.Limit
		}
	}
	return total, customers
}

// Sorted id accessors keep validator and display walks deterministic.

func (r *Registry) BrokerIDs() []string   { return sortedKeys(r.Brokers) }
func (r *Registry) SessionIDs() []string  { return sortedKeys(r.Sessions) }
func (r *Registry) CustomerIDs() []string { return sortedKeys(r.Customers) }

func (r *Registry) CreditCustomerIDs() []string { return sortedKeys(r.Credit) }
func (r *Registry) LineBrokerIDs() []string     { return sortedKeys(r.Lines) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
