package services

import (
	"fmt"
	"strings"

	"catering_manager/internal/metrics"
	"catering_manager/internal/models"
	"catering_manager/pkg/invoice"

	"github.com/sirupsen/logrus"
)

type ExportService interface {
	Formats() []invoice.Format
	// Export renders the confirmed draft.
	Export(format string) (*invoice.Artifact, error)
	// ExportOrder renders a stored order without touching the form or draft.
	ExportOrder(orderID, format string) (*invoice.Artifact, error)
}

type exportService struct {
	state *State
	sinks map[invoice.Format]invoice.Sink
	order []invoice.Format
	log   *logrus.Entry
}

func NewExportService(state *State, sinks []invoice.Sink, logger *logrus.Logger) ExportService {
	s := &exportService{
		state: state,
		sinks: make(map[invoice.Format]invoice.Sink, len(sinks)),
		log:   componentLogger(logger, "exports"),
	}
	for _, sink := range sinks {
		if _, dup := s.sinks[sink.Format()]; !dup {
			s.order = append(s.order, sink.Format())
		}
		s.sinks[sink.Format()] = sink
	}
	return s
}

func (s *exportService) Formats() []invoice.Format {
	return append([]invoice.Format{}, s.order...)
}

func (s *exportService) Export(format string) (*invoice.Artifact, error) {
	sink, err := s.sink(format)
	if err != nil {
		return nil, err
	}

	s.state.mu.Lock()
	if s.state.draft == nil || !s.state.exportsEnabled {
		s.state.mu.Unlock()
		return nil, NewValidationError("please confirm the order before exporting")
	}
	draft := copyOrder(*s.state.draft)
	s.state.mu.Unlock()

	return s.render(sink, draft)
}

func (s *exportService) ExportOrder(orderID, format string) (*invoice.Artifact, error) {
	sink, err := s.sink(format)
	if err != nil {
		return nil, err
	}

	s.state.mu.Lock()
	_, found := s.state.findOrder(orderID)
	if found == nil {
		s.state.mu.Unlock()
		return nil, notFound("order", orderID)
	}
	order := copyOrder(*found)
	s.state.mu.Unlock()

	return s.render(sink, order)
}

func (s *exportService) sink(format string) (invoice.Sink, error) {
	sink, ok := s.sinks[invoice.Format(strings.ToLower(strings.TrimSpace(format)))]
	if !ok {
		return nil, NewValidationError("unsupported export format %q", format)
	}
	return sink, nil
}

// render runs the sink outside the state lock. A failing or panicking sink
// yields an ExportError and no artifact.
func (s *exportService) render(sink invoice.Sink, order models.Order) (art *invoice.Artifact, err error) {
	format := string(sink.Format())
	log := s.log.WithFields(logrus.Fields{"format": format, "order_id": order.ID})

	defer func() {
		if r := recover(); r != nil {
			art = nil
			err = &ExportError{Format: format, Err: fmt.Errorf("renderer panic: %v", r)}
		}
		if err != nil {
			metrics.RecordExport(format, false)
			log.WithError(err).Error("export failed")
			return
		}
		metrics.RecordExport(format, true)
		log.WithField("filename", art.Filename).Info("export rendered")
	}()

	art, err = sink.Render(toInvoice(order))
	if err != nil {
		return nil, &ExportError{Format: format, Err: err}
	}
	if art == nil {
		return nil, &ExportError{Format: format, Err: fmt.Errorf("renderer returned no document")}
	}
	return art, nil
}

func toInvoice(o models.Order) invoice.Invoice {
	at, _ := o.Time()
	return invoice.Invoice{
		Number:        o.ID,
		ClientName:    o.ClientName,
		ClientPhone:   o.ClientPhone,
		ClientAddress: o.ClientAddress,
		MenuName:      o.MenuName,
		PricePerPlate: o.MenuPrice,
		Quantity:      o.Quantity,
		Total:         o.TotalAmount,
		Items:         append([]string{}, o.Items...),
		Date:          at,
	}
}
