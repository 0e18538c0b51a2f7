package services

import (
	portsrepo "github.com/SscSPs/invoice_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_management_app/internal/core/ports/services"
)

// NewServiceContainer creates a new ServiceContainer with all services initialized.
// Reference checks are wired from whichever lookups the provider carries.
func NewServiceContainer(repos portsrepo.RepositoryProvider, opts ...InvoiceServiceOption) *portssvc.ServiceContainer {
	invoiceOpts := make([]InvoiceServiceOption, 0, len(opts)+2)
	if repos.EntityRepo != nil {
		invoiceOpts = append(invoiceOpts, WithEntityLookup(repos.EntityRepo))
	}
	if repos.CatalogRepo != nil {
		invoiceOpts = append(invoiceOpts, WithCatalogLookup(repos.CatalogRepo))
	}
	invoiceOpts = append(invoiceOpts, opts...)

	return &portssvc.ServiceContainer{
		Invoice: NewInvoiceService(repos.InvoiceRepo, invoiceOpts...),
		Lookup:  NewLookupService(repos.EntityRepo, repos.CatalogRepo),
	}
}
