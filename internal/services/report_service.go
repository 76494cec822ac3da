package services

import (
	"sort"
	"strings"
	"time"

	"catering_manager/internal/models"
	"catering_manager/pkg/invoice"
)

const monthLayout = "2006-01"

type ReportRow struct {
	OrderID     string `json:"orderId"`
	Date        string `json:"date"`
	ClientName  string `json:"clientName"`
	ClientPhone string `json:"clientPhone"`
	MenuName    string `json:"menuName"`
	Quantity    int    `json:"quantity"`
	Total       string `json:"total"`
}

// Report is the revenue view for one month, or for all orders when Month is empty.
type Report struct {
	Month          string         `json:"month"`
	Orders         []models.Order `json:"orders"`
	Rows           []ReportRow    `json:"rows"`
	Count          int            `json:"count"`
	Revenue        float64        `json:"revenue"`
	RevenueDisplay string         `json:"revenueDisplay"`
}

type ReportService interface {
	RenderReport(month string) (*Report, error)
	DefaultMonth() string
}

type reportService struct {
	state    *State
	location *time.Location
	currency string
}

func NewReportService(state *State, location *time.Location, currencySymbol string) ReportService {
	if location == nil {
		location = time.Local
	}
	return &reportService{state: state, location: location, currency: currencySymbol}
}

// RenderReport lists orders newest first, keeping insertion order among equal
// dates, filtered to the given YYYY-MM in the report location.
func (s *reportService) RenderReport(month string) (*Report, error) {
	month = strings.TrimSpace(month)
	if month != "" {
		if _, err := time.Parse(monthLayout, month); err != nil || len(month) != len(monthLayout) {
			return nil, NewValidationError("month must be formatted as YYYY-MM")
		}
	}

	s.state.mu.Lock()
	orders := s.state.snapshot().Orders
	s.state.mu.Unlock()

	type dated struct {
		order models.Order
		at    time.Time
		ok    bool
	}
	list := make([]dated, 0, len(orders))
	for _, o := range orders {
		at, ok := o.Time()
		list = append(list, dated{order: o, at: at, ok: ok})
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].at.After(list[j].at)
	})

	report := &Report{Month: month, Orders: []models.Order{}, Rows: []ReportRow{}}
	for _, d := range list {
		if month != "" && (!d.ok || d.at.In(s.location).Format(monthLayout) != month) {
			continue
		}
		report.Orders = append(report.Orders, d.order)
		report.Revenue += d.order.TotalAmount
		report.Rows = append(report.Rows, s.row(d.order, d.at, d.ok))
	}
	report.Count = len(report.Orders)
	report.RevenueDisplay = invoice.FormatAmount(s.currency, report.Revenue)
	return report, nil
}

func (s *reportService) row(o models.Order, at time.Time, ok bool) ReportRow {
	date := "-"
	if ok {
		date = at.In(s.location).Format(invoice.DateLayout)
	}
	phone := o.ClientPhone
	if strings.TrimSpace(phone) == "" {
		phone = "-"
	}
	return ReportRow{
		OrderID:     o.ID,
		Date:        date,
		ClientName:  o.ClientName,
		ClientPhone: phone,
		MenuName:    o.MenuName,
		Quantity:    o.Quantity,
		Total:       invoice.FormatAmount(s.currency, o.TotalAmount),
	}
}

func (s *reportService) DefaultMonth() string {
	return s.state.now().In(s.location).Format(monthLayout)
}
