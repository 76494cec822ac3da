package services

import (
	"testing"
	"time"

	"catering_manager/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportFixture() []models.Order {
	return []models.Order{
		{ID: "1", ClientName: "Asha", MenuName: "Lunch", Quantity: 2, TotalAmount: 400, Date: "2024-04-10T09:00:00.000Z"},
		{ID: "2", ClientName: "Ravi", ClientPhone: "98765", MenuName: "Breakfast", Quantity: 5, TotalAmount: 750, Date: "2024-05-02T08:00:00.000Z"},
		{ID: "3", ClientName: "Meena", MenuName: "Dinner", Quantity: 1, TotalAmount: 300.25, Date: "2024-05-20T19:30:00.000Z"},
		{ID: "4", ClientName: "Guest", MenuName: "Lunch", Quantity: 3, TotalAmount: 600, Date: "2024-05-02T08:00:00.000Z"},
		{ID: "5", ClientName: "Old", MenuName: "Lunch", Quantity: 1, TotalAmount: 100, Date: "not a date"},
	}
}

func orderIDs(orders []models.Order) []string {
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	return ids
}

func TestRenderReportFiltersByMonth(t *testing.T) {
	env := newTestEnv(t)
	env.seedOrders(reportFixture()...)

	report, err := env.reports.RenderReport("2024-05")
	require.NoError(t, err)

	// newest first; orders 2 and 4 share a timestamp and keep insertion order
	assert.Equal(t, []string{"3", "2", "4"}, orderIDs(report.Orders))
	assert.Equal(t, 3, report.Count)
	assert.InDelta(t, 750+300.25+600, report.Revenue, 1e-9)
	assert.Equal(t, "₹1,650.25", report.RevenueDisplay)
}

func TestRenderReportAllOrders(t *testing.T) {
	env := newTestEnv(t)
	env.seedOrders(reportFixture()...)

	report, err := env.reports.RenderReport("")
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "2", "4", "1", "5"}, orderIDs(report.Orders))
	assert.Equal(t, 5, report.Count)
	assert.Equal(t, "-", report.Rows[4].Date)
}

func TestRenderReportEmptyMonth(t *testing.T) {
	env := newTestEnv(t)
	env.seedOrders(reportFixture()...)

	report, err := env.reports.RenderReport("2099-01")
	require.NoError(t, err)
	assert.Equal(t, 0, report.Count)
	assert.Equal(t, 0.0, report.Revenue)
	assert.Equal(t, "₹0.00", report.RevenueDisplay)
	assert.Empty(t, report.Rows)
	assert.NotNil(t, report.Orders)
}

func TestRenderReportRejectsMalformedMonth(t *testing.T) {
	env := newTestEnv(t)

	for _, month := range []string{"2024-13", "2024-5", "May 2024", "2024-05-01", "24-05"} {
		_, err := env.reports.RenderReport(month)
		assert.True(t, IsValidation(err), month)
	}
}

func TestReportRowsCarryDisplayStrings(t *testing.T) {
	env := newTestEnv(t)
	env.seedOrders(reportFixture()...)

	report, err := env.reports.RenderReport("2024-05")
	require.NoError(t, err)

	assert.Equal(t, ReportRow{
		OrderID:     "2",
		Date:        "02/05/2024",
		ClientName:  "Ravi",
		ClientPhone: "98765",
		MenuName:    "Breakfast",
		Quantity:    5,
		Total:       "₹750.00",
	}, report.Rows[1])
	assert.Equal(t, "-", report.Rows[0].ClientPhone)
}

func TestReportMonthUsesReportLocation(t *testing.T) {
	env := newTestEnv(t)
	ist := time.FixedZone("IST", 5*3600+1800)
	reports := NewReportService(env.state, ist, "₹")

	env.seedOrders(models.Order{ID: "1", Quantity: 1, TotalAmount: 100, Date: "2024-04-30T20:00:00.000Z"})

	april, err := reports.RenderReport("2024-04")
	require.NoError(t, err)
	assert.Equal(t, 0, april.Count)

	may, err := reports.RenderReport("2024-05")
	require.NoError(t, err)
	assert.Equal(t, 1, may.Count)
	assert.Equal(t, "01/05/2024", may.Rows[0].Date)
}

func TestDefaultMonth(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, "2024-05", env.reports.DefaultMonth())
}
