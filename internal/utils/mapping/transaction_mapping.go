package mapping

import (
	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
	"github.com/ThibautWa/grigou-sub000/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	m := models.Transaction{
		TransactionID:     d.TransactionID,
		WalletID:          d.WalletID,
		Type:              string(d.Type),
		Amount:            d.Amount,
		Description:       d.Description,
		CategoryID:        d.CategoryID,
		CategoryName:      d.CategoryName,
		CategoryColor:     d.CategoryColor,
		Date:              domain.DateOf(d.Date),
		IsRecurring:       d.IsRecurring,
		RecurrenceEndDate: d.RecurrenceEndDate,
		CreatedBy:         d.CreatedBy,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
	if d.RecurrenceType != nil {
		rt := string(*d.RecurrenceType)
		m.RecurrenceType = &rt
	}
	return m
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	d := domain.Transaction{
		TransactionID:     m.TransactionID,
		WalletID:          m.WalletID,
		Type:              domain.TransactionType(m.Type),
		Amount:            m.Amount,
		Description:       m.Description,
		CategoryID:        m.CategoryID,
		CategoryName:      m.CategoryName,
		CategoryColor:     m.CategoryColor,
		Date:              domain.DateOf(m.Date),
		IsRecurring:       m.IsRecurring,
		RecurrenceEndDate: m.RecurrenceEndDate,
		CreatedBy:         m.CreatedBy,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
	if m.RecurrenceType != nil {
		rt := domain.RecurrenceType(*m.RecurrenceType)
		d.RecurrenceType = &rt
	}
	if m.RecurrenceEndDate != nil {
		end := domain.DateOf(*m.RecurrenceEndDate)
		d.RecurrenceEndDate = &end
	}
	return d
}

// ToDomainTransactions converts a slice of model Transactions
func ToDomainTransactions(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
