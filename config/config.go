package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rustyeddy/fxcredit/venue"
	"gopkg.in/yaml.v3"
)

// Document filenames, matching the original viewer layout. Static reference
// data (brokers, customers, sessions) lives apart from the credit document,
// which the vendor replaces wholesale.
const (
	BrokersFile   = "prime_brokers.yaml"
	CustomersFile = "customers.yaml"
	SessionsFile  = "sessions.yaml"
	CreditFile    = "credit_data.yaml"
)

// Paths locates the four configuration documents.
type Paths struct {
	Brokers   string
	Customers string
	Sessions  string
	Credit    string
}

// DefaultPaths returns the conventional document layout under dir.
func DefaultPaths(dir string) Paths {
	return Paths{
		Brokers:   filepath.Join(dir, BrokersFile),
		Customers: filepath.Join(dir, CustomersFile),
		Sessions:  filepath.Join(dir, SessionsFile),
		Credit:    filepath.Join(dir, CreditFile),
	}
}

// LoadError reports a malformed or unreadable configuration document, naming
// the offending file and, where one applies, the offending field. Structural
// problems are fatal for that document; cross-document references are the
// validator's business, not the loader's.
type LoadError struct {
	File  string
	Field string // empty for document-level problems
	Err   error
}

func (e *LoadError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("load %s: %v", e.File, e.Err)
	}
	return fmt.Sprintf("load %s: field %q: %v", e.File, e.Field, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func loadErr(file, field, format string, args ...any) *LoadError {
	return &LoadError{File: file, Field: field, Err: fmt.Errorf(format, args...)}
}

// Wire shapes. Tags stay here so the venue types remain plain domain records.

type brokerRow struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	IsCentral bool   `yaml:"is_central"`
}

type customerRow struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

type sessionRow struct {
	ID         string `yaml:"id"`
	CustomerID string `yaml:"customer_id"`
	BrokerID   string `yaml:"broker_id"`
	Protocol   string `yaml:"protocol,omitempty"`
}

type creditRow struct {
	CustomerID  string  `yaml:"customer_id"`
	Limit       float64 `yaml:"limit"`
	Exposure    float64 `yaml:"exposure"`
	Currency    string  `yaml:"currency"`
	LastUpdated string  `yaml:"last_updated"`
}

type lineRow struct {
	BrokerID        string  `yaml:"broker_id"`
	CentralBrokerID string  `yaml:"central_broker_id"`
	Limit           float64 `yaml:"limit"`
	Currency        string  `yaml:"currency"`
	LastUpdated     string  `yaml:"last_updated"`
}

type creditDoc struct {
	CustomerLimits []creditRow `yaml:"customer_limits"`
	BrokerLines    []lineRow   `yaml:"broker_lines"`
}

// Load reads the four documents and assembles a registry. The first
// malformed document aborts the load with a *LoadError.
func Load(p Paths) (*venue.Registry, error) {
	brokers, err := LoadBrokers(p.Brokers)
	if err != nil {
		return nil, err
	}
	customers, err := LoadCustomers(p.Customers)
	if err != nil {
		return nil, err
	}
	sessions, err := LoadSessions(p.Sessions)
	if err != nil {
		return nil, err
	}
	credit, lines, err := LoadCredit(p.Credit)
	if err != nil {
		return nil, err
	}

	return &venue.Registry{
		Brokers:   brokers,
		Customers: customers,
		Sessions:  sessions,
		Credit:    credit,
		Lines:     lines,
	}, nil
}

// LoadDir is Load over the conventional filenames in dir.
func LoadDir(dir string) (*venue.Registry, error) {
	return Load(DefaultPaths(dir))
}

// LoadBrokers reads the prime broker document into a map keyed by broker id.
func LoadBrokers(path string) (map[string]venue.PrimeBroker, error) {
	file := filepath.Base(path)
	var rows []brokerRow
	if err := readDoc(path, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, loadErr(file, "", "document has no broker records")
	}

	out := make(map[string]venue.PrimeBroker, len(rows))
	for i, row := range rows {
		if row.ID == "" {
			return nil, loadErr(file, "id", "broker %d: id is required", i)
		}
		if row.Name == "" {
			return nil, loadErr(file, "name", "broker %q: name is required", row.ID)
		}
		if _, dup := out[row.ID]; dup {
			return nil, loadErr(file, "id", "broker %q: duplicate id", row.ID)
		}
		out[row.ID] = venue.PrimeBroker{ID: row.ID, Name: row.Name, IsCentral: row.IsCentral}
	}
	return out, nil
}

// LoadCustomers reads the customer document into a map keyed by customer id.
func LoadCustomers(path string) (map[string]venue.Customer, error) {
	file := filepath.Base(path)
	var rows []customerRow
	if err := readDoc(path, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, loadErr(file, "", "document has no customer records")
	}

	out := make(map[string]venue.Customer, len(rows))
	for i, row := range rows {
		if row.ID == "" {
			return nil, loadErr(file, "id", "customer %d: id is required", i)
		}
		if row.Name == "" {
			return nil, loadErr(file, "name", "customer %q: name is required", row.ID)
		}
		if _, dup := out[row.ID]; dup {
			return nil, loadErr(file, "id", "customer %q: duplicate id", row.ID)
		}
		out[row.ID] = venue.Customer{ID: row.ID, Name: row.Name, Description: row.Description}
	}
	return out, nil
}

// LoadSessions reads the session document into a map keyed by session id.
// Customer and broker references are recorded as-is; dangling ones surface
// in the validation report rather than failing the load.
func LoadSessions(path string) (map[string]venue.Session, error) {
	file := filepath.Base(path)
	var rows []sessionRow
	if err := readDoc(path, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, loadErr(file, "", "document has no session records")
	}

	out := make(map[string]venue.Session, len(rows))
	for i, row := range rows {
		if row.ID == "" {
			return nil, loadErr(file, "id", "session %d: id is required", i)
		}
		if row.CustomerID == "" {
			return nil, loadErr(file, "customer_id", "session %q: customer_id is required", row.ID)
		}
		if row.BrokerID == "" {
			return nil, loadErr(file, "broker_id", "session %q: broker_id is required", row.ID)
		}
		if _, dup := out[row.ID]; dup {
			return nil, loadErr(file, "id", "session %q: duplicate id", row.ID)
		}
		out[row.ID] = venue.Session{
			ID:         row.ID,
			CustomerID: row.CustomerID,
			BrokerID:   row.BrokerID,
			Protocol:   row.Protocol,
		}
	}
	return out, nil
}

// LoadCredit reads the credit document: customer entries keyed by customer
// id and broker lines keyed by the non-central broker id. Amounts must be
// non-negative; a negative amount means the document is malformed, while
// exposure above limit is valid data (a breach the resolver reports).
func LoadCredit(path string) (map[string]venue.CreditEntry, map[string]venue.CreditLine, error) {
	file := filepath.Base(path)
	var doc creditDoc
	if err := readDoc(path, &doc); err != nil {
		return nil, nil, err
	}
	if len(doc.CustomerLimits) == 0 && len(doc.BrokerLines) == 0 {
		return nil, nil, loadErr(file, "", "document has no credit records")
	}

	entries := make(map[string]venue.CreditEntry, len(doc.CustomerLimits))
	for i, row := range doc.CustomerLimits {
		if row.CustomerID == "" {
			return nil, nil, loadErr(file, "customer_id", "customer limit %d: customer_id is required", i)
		}
		if row.Limit < 0 {
			return nil, nil, loadErr(file, "limit", "customer %q: limit must be non-negative", row.CustomerID)
		}
		if row.Exposure < 0 {
			return nil, nil, loadErr(file, "exposure", "customer %q: exposure must be non-negative", row.CustomerID)
		}
		if row.Currency == "" {
			return nil, nil, loadErr(file, "currency", "customer %q: currency is required", row.CustomerID)
		}
		updated, err := parseUpdated(file, fmt.Sprintf("customer %q", row.CustomerID), row.LastUpdated)
		if err != nil {
			return nil, nil, err
		}
		if _, dup := entries[row.CustomerID]; dup {
			return nil, nil, loadErr(file, "customer_id", "customer %q: duplicate credit entry", row.CustomerID)
		}
		entries[row.CustomerID] = venue.CreditEntry{
			CustomerID:  row.CustomerID,
			Limit:       row.Limit,
			Exposure:    row.Exposure,
			Currency:    row.Currency,
			LastUpdated: updated,
		}
	}

	lines := make(map[string]venue.CreditLine, len(doc.BrokerLines))
	for i, row := range doc.BrokerLines {
		if row.BrokerID == "" {
			return nil, nil, loadErr(file, "broker_id", "broker line %d: broker_id is required", i)
		}
		if row.CentralBrokerID == "" {
			return nil, nil, loadErr(file, "central_broker_id", "broker line %q: central_broker_id is required", row.BrokerID)
		}
		if row.Limit < 0 {
			return nil, nil, loadErr(file, "limit", "broker line %q: limit must be non-negative", row.BrokerID)
		}
		if row.Currency == "" {
			return nil, nil, loadErr(file, "currency", "broker line %q: currency is required", row.BrokerID)
		}
		updated, err := parseUpdated(file, fmt.Sprintf("broker line %q", row.BrokerID), row.LastUpdated)
		if err != nil {
			return nil, nil, err
		}
		if _, dup := lines[row.BrokerID]; dup {
			return nil, nil, loadErr(file, "broker_id", "broker line %q: duplicate line", row.BrokerID)
		}
		lines[row.BrokerID] = venue.CreditLine{
			BrokerID:        row.BrokerID,
			CentralBrokerID: row.CentralBrokerID,
			Limit:           row.Limit,
			Currency:        row.Currency,
			LastUpdated:     updated,
		}
	}

	return entries, lines, nil
}

func parseUpdated(file, record, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, loadErr(file, "last_updated", "%s: last_updated is required", record)
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, loadErr(file, "last_updated", "%s: %v", record, err)
	}
	return t, nil
}

func readDoc(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &LoadError{File: filepath.Base(path), Err: err}
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return &LoadError{File: filepath.Base(path), Err: fmt.Errorf("parse yaml: %w", err)}
	}
	return nil
}
