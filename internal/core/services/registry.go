package services

import (
	"github.com/custodia-labs/insumos/internal/core/domain"
	"github.com/custodia-labs/insumos/internal/core/ports/driven"
)

// Column and sheet names of the categories with a real aggregation rule.
const (
	OrderGroupColumn  = "Pedido Número"
	OrderStatusColumn = "Estado"

	InvoiceSheet        = "Facturas"
	InvoiceGroupColumn  = "Factura"
	InvoiceStatusColumn = "Estado proceso"
)

// ProcessorFactory builds a category's processor for a time window.
type ProcessorFactory func(reader driven.TableReader, window domain.TimeWindow) Processor

// Registry maps categories to processor factories.
// It is built once at startup and read-only afterwards.
type Registry struct {
	reader    driven.TableReader
	order     []domain.Category
	factories map[domain.Category]ProcessorFactory
}

// NewRegistry creates a registry with the six built-in categories.
func NewRegistry(reader driven.TableReader) *Registry {
	r := &Registry{
		reader:    reader,
		factories: make(map[domain.Category]ProcessorFactory),
	}
	r.registerBuiltins()
	return r
}

func (r *Registry) registerBuiltins() {
	for _, c := range domain.Categories() {
		category := c
		switch category {
		case domain.CategoryOrderSync:
			r.Register(category, func(reader driven.TableReader, w domain.TimeWindow) Processor {
				return NewDocumentProcessor(category, reader, w, "", OrderGroupColumn, OrderStatusColumn)
			})
		case domain.CategoryElectronicInvoice:
			r.Register(category, func(reader driven.TableReader, w domain.TimeWindow) Processor {
				return NewDocumentProcessor(category, reader, w, InvoiceSheet, InvoiceGroupColumn, InvoiceStatusColumn)
			})
		default:
			r.Register(category, func(reader driven.TableReader, w domain.TimeWindow) Processor {
				return NewRowCountProcessor(category, reader, w)
			})
		}
	}
}

// Register adds or replaces a category's factory. New categories are
// appended to the batch order.
func (r *Registry) Register(category domain.Category, factory ProcessorFactory) {
	if _, exists := r.factories[category]; !exists {
		r.order = append(r.order, category)
	}
	r.factories[category] = factory
}

// Processor builds the processor for category with the given window.
func (r *Registry) Processor(category domain.Category, window domain.TimeWindow) (Processor, error) {
	factory, ok := r.factories[category]
	if !ok {
		return nil, &domain.UnknownCategoryError{Name: string(category)}
	}
	return factory(r.reader, window), nil
}

// Lookup resolves a selector string to a processor.
func (r *Registry) Lookup(selector string, window domain.TimeWindow) (Processor, error) {
	return r.Processor(domain.Category(selector), window)
}

// Categories returns the registered categories in batch order.
func (r *Registry) Categories() []domain.Category {
	out := make([]domain.Category, len(r.order))
	copy(out, r.order)
	return out
}
