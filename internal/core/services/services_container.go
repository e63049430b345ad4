package services

import (
	portsrepo "github.com/ThibautWa/grigou-sub000/internal/core/ports/repositories"
	portssvc "github.com/ThibautWa/grigou-sub000/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, walletOptions ...WalletServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The wallet service answers every permission question, so it comes first.
	container.Wallet = NewWalletService(
		repos.WalletRepo,
		repos.TransactionRepo,
		repos.CategoryRepo,
		repos.ReportingRepo,
		walletOptions...,
	)

	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.CategoryRepo, container.Wallet)
	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Prediction = NewPredictionService(repos.TransactionRepo, container.Wallet)
	container.Reporting = NewReportingService(
		repos.ReportingRepo,
		WithReportingWalletAuthorizer(container.Wallet),
		WithPredictions(repos.TransactionRepo, container.Prediction),
	)

	return container
}
