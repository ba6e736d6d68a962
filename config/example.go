package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rustyeddy/fxcredit/venue"
	"gopkg.in/yaml.v3"
)

// exampleUpdated is the vendor timestamp stamped on the built-in credit
// data. Fixed so the demo and tests are reproducible.
var exampleUpdated = time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)

// Default returns the built-in example data set: one central broker, two
// client brokers, two customers, three FIX sessions and a vendor credit
// snapshot. Cust_2 runs over its limit on purpose so breach reporting has
// something to show.
func Default() *venue.Registry {
	r := venue.NewRegistry()

	r.Brokers["CPB_1"] = venue.PrimeBroker{ID: "CPB_1", Name: "Central Prime Broker One", IsCentral: true}
	r.Brokers["PB_A"] = venue.PrimeBroker{ID: "PB_A", Name: "Prime Broker Alpha"}
	r.Brokers["PB_B"] = venue.PrimeBroker{ID: "PB_B", Name: "Prime Broker Beta"}

	r.Customers["Cust_1"] = venue.Customer{ID: "Cust_1", Name: "Hedge Fund Gamma", Description: "systematic macro fund"}
	r.Customers["Cust_2"] = venue.Customer{ID: "Cust_2", Name: "Asset Manager Delta", Description: "long-only asset manager"}

	r.Sessions["FIXS_C1_PBA_001"] = venue.Session{ID: "FIXS_C1_PBA_001", CustomerID: "Cust_1", BrokerID: "PB_A", Protocol: "FIX 4.2"}
	r.Sessions["FIXS_C1_PBB_001"] = venue.Session{ID: "FIXS_C1_PBB_001", CustomerID: "Cust_1", BrokerID: "PB_B", Protocol: "FIX 4.4"}
	r.Sessions["FIXS_C2_PBA_001"] = venue.Session{ID: "FIXS_C2_PBA_001", CustomerID: "Cust_2", BrokerID: "PB_A", Protocol: "FIX 4.2"}

	r.Credit["Cust_1"] = venue.CreditEntry{CustomerID: "Cust_1", Limit: 1_000_000, Exposure: 250_000, Currency: "USD", LastUpdated: exampleUpdated}
	r.Credit["Cust_2"] = venue.CreditEntry{CustomerID: "Cust_2", Limit: 2_000_000, Exposure: 2_150_000, Currency: "USD", LastUpdated: exampleUpdated}

	r.Lines["PB_A"] = venue.CreditLine{BrokerID: "PB_A", CentralBrokerID: "CPB_1", Limit: 5_000_000, Currency: "USD", LastUpdated: exampleUpdated}
	r.Lines["PB_B"] = venue.CreditLine{BrokerID: "PB_B", CentralBrokerID: "CPB_1", Limit: 3_000_000, Currency: "USD", LastUpdated: exampleUpdated}

	return r
}

// WriteExamples writes the four example documents into dir, creating it if
// needed. Backs `fxcredit config init`.
func WriteExamples(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	reg := Default()

	brokers := make([]brokerRow, 0, len(reg.Brokers))
	for _, id := range reg.BrokerIDs() {
		b := reg.Brokers[id]
		brokers = append(brokers, brokerRow{ID: b.ID, Name: b.Name, IsCentral: b.IsCentral})
	}
	if err := writeDoc(filepath.Join(dir, BrokersFile), brokers); err != nil {
		return err
	}

	customers := make([]customerRow, 0, len(reg.Customers))
	for _, id := range reg.CustomerIDs() {
		c := reg.Customers[id]
		customers = append(customers, customerRow{ID: c.ID, Name: c.Name, Description: c.Description})
	}
	if err := writeDoc(filepath.Join(dir, CustomersFile), customers); err != nil {
		return err
	}

	sessions := make([]sessionRow, 0, len(reg.Sessions))
	for _, id := range reg.SessionIDs() {
		s := reg.Sessions[id]
		sessions = append(sessions, sessionRow{ID: s.ID, CustomerID: s.CustomerID, BrokerID: s.BrokerID, Protocol: s.Protocol})
	}
	if err := writeDoc(filepath.Join(dir, SessionsFile), sessions); err != nil {
		return err
	}

	data, err := MarshalCredit(reg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, CreditFile), data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", CreditFile, err)
	}
	return nil
}

// MarshalCredit renders the registry's credit tables back into the credit
// document format. The whatif command uses it to preview a simulated vendor
// update without writing anything.
func MarshalCredit(reg *venue.Registry) ([]byte, error) {
	var doc creditDoc
	for _, id := range reg.CreditCustomerIDs() {
		e := reg.Credit[id]
		doc.CustomerLimits = append(doc.CustomerLimits, creditRow{
			CustomerID:  e.CustomerID,
			Limit:       e.Limit,
			Exposure:    e.Exposure,
			Currency:    e.Currency,
			LastUpdated: e.LastUpdated.UTC().Format(time.RFC3339),
		})
	}
	for _, id := range reg.LineBrokerIDs() {
		l := reg.Lines[id]
		doc.BrokerLines = append(doc.BrokerLines, lineRow{
			BrokerID:        l.BrokerID,
			CentralBrokerID: l.CentralBrokerID,
			Limit:           l.Limit,
			Currency:        l.Currency,
			LastUpdated:     l.LastUpdated.UTC().Format(time.RFC3339),
		})
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal credit document: %w", err)
	}
	return data, nil
}

func writeDoc(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
