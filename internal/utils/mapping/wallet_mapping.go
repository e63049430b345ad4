package mapping

import (
	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
	"github.com/ThibautWa/grigou-sub000/internal/models"
)

// ToModelWallet converts a domain Wallet to a model Wallet
func ToModelWallet(d domain.Wallet) models.Wallet {
	return models.Wallet{
		WalletID:       d.WalletID,
		OwnerID:        d.OwnerID,
		Name:           d.Name,
		Description:    d.Description,
		InitialBalance: d.InitialBalance,
		CurrencyCode:   d.CurrencyCode,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// ToDomainWallet converts a model Wallet to a domain Wallet
func ToDomainWallet(m models.Wallet) domain.Wallet {
	return domain.Wallet{
		WalletID:       m.WalletID,
		OwnerID:        m.OwnerID,
		Name:           m.Name,
		Description:    m.Description,
		InitialBalance: m.InitialBalance,
		CurrencyCode:   m.CurrencyCode,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// ToDomainWalletAccess converts a model WalletAccess to a domain WalletAccess
func ToDomainWalletAccess(m models.WalletAccess) domain.WalletAccess {
	return domain.WalletAccess{
		Wallet:     ToDomainWallet(m.Wallet),
		Permission: domain.WalletPermission(m.Permission),
	}
}
