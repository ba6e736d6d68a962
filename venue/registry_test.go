package venue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testRegistry() *Registry {
	r := NewRegistry()
	r.Brokers["CPB_1"] = PrimeBroker{ID: "CPB_1", Name: "Central Prime Broker One", IsCentral: true}
	r.Brokers["PB_A"] = PrimeBroker{ID: "PB_A", Name: "Prime Broker Alpha"}
	r.Brokers["PB_B"] = PrimeBroker{ID: "PB_B", Name: "Prime Broker Beta"}
	r.Customers["Cust_1"] = Customer{ID: "Cust_1", Name: "Hedge Fund Gamma"}
	r.Customers["Cust_2"] = Customer{ID: "Cust_2", Name: "Asset Manager Delta"}
	r.Sessions["FIXS_C1_PBA_001"] = Session{ID: "FIXS_C1_PBA_001", CustomerID: "Cust_1", BrokerID: "PB_A"}
	r.Sessions["FIXS_C1_PBB_001"] = Session{ID: "FIXS_C1_PBB_001", CustomerID: "Cust_1", BrokerID: "PB_B"}
	r.Sessions["FIXS_C2_PBA_001"] = Session{ID: "FIXS_C2_PBA_001", CustomerID: "Cust_2", BrokerID: "PB_A"}
	r.Credit["Cust_1"] = CreditEntry{CustomerID: "Cust_1", Limit: 1_000_000, Exposure: 250_000, Currency: "USD"}
	r.Lines["PB_A"] = CreditLine{BrokerID: "PB_A", CentralBrokerID: "CPB_1", Limit: 5_000_000, Currency: "USD"}
	return r
}

func TestCounts(t *testing.T) {
	t.Parallel()

	c := testRegistry().Counts()
	assert.Equal(t, 3, c.Brokers)
	assert.Equal(t, 2, c.Customers)
	assert.Equal(t, 3, c.Sessions)
	assert.Equal(t, 1, c.CreditEntries)
	assert.Equal(t, 1, c.CreditLines)
}

func TestCentralBrokers(t *testing.T) {
	t.Parallel()

	r := testRegistry()
	central := r.CentralBrokers()
	assert.Len(t, central, 1)
	assert.Equal(t, "CPB_1", central[0].ID)

	r.Brokers["PB_B"] = PrimeBroker{ID: "PB_B", Name: "Prime Broker Beta", IsCentral: true}
	central = r.CentralBrokers()
	assert.Len(t, central, 2)
	assert.Equal(t, "CPB_1", central[0].ID)
	assert.Equal(t, "PB_B", central[1].ID)
}

func TestCentralBrokersNone(t *testing.T) {
	t.Parallel()

	assert.Empty(t, NewRegistry().CentralBrokers())
}

func TestSessionsForCustomer(t *testing.T) {
	t.Parallel()

	sessions := testRegistry().SessionsForCustomer("Cust_1")
	assert.Len(t, sessions, 2)
	assert.Equal(t, "FIXS_C1_PBA_001", sessions[0].ID)
	assert.Equal(t, "FIXS_C1_PBB_001", sessions[1].ID)

	assert.Empty(t, testRegistry().SessionsForCustomer("Cust_unknown"))
}

func TestSessionsForBroker(t *testing.T) {
	t.Parallel()

	sessions := testRegistry().SessionsForBroker("PB_A")
	assert.Len(t, sessions, 2)
	assert.Equal(t, "FIXS_C1_PBA_001", sessions[0].ID)
	assert.Equal(t, "FIXS_C2_PBA_001", sessions[1].ID)
}

func TestClone(t *testing.T) {
	t.Parallel()

	orig := testRegistry()
	clone := orig.Clone()
	assert.Equal(t, orig.Counts(), clone.Counts())

	e := clone.Credit["Cust_1"]
	e.Limit = 9_999_999
	clone.Credit["Cust_1"] = e
	delete(clone.Sessions, "FIXS_C1_PBA_001")

	assert.Equal(t, 1_000_000.0, orig.Credit["Cust_1"].Limit)
	assert.Len(t, orig.Sessions, 3)
}

func TestIssuedCredit(t *testing.T) {
	t.Parallel()

	r := testRegistry()

	// Cust_2 trades through PB_A but has no credit entry: counted, adds zero.
	total, customers := r.IssuedCredit("PB_A")
	assert.Equal(t, 1_000_000.0, total)
	assert.Equal(t, 2, customers)

	total, customers = r.IssuedCredit("PB_B")
	assert.Equal(t, 1_000_000.0, total)
	assert.Equal(t, 1, customers)

	total, customers = r.IssuedCredit("PB_unknown")
	assert.Zero(t, total)
	assert.Zero(t, customers)
}

func TestSortedIDs(t *testing.T) {
	t.Parallel()

	r := testRegistry()
	assert.Equal(t, []string{"CPB_1", "PB_A", "PB_B"}, r.BrokerIDs())
	assert.Equal(t, []string{"Cust_1", "Cust_2"}, r.CustomerIDs())
	assert.Equal(t, []string{"Cust_1"}, r.CreditCustomerIDs())
	assert.Equal(t, []string{"PB_A"}, r.LineBrokerIDs())
}
