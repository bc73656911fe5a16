// Package paymentrepo maps payment aggregates to the payments table.
package paymentrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"

	"github.com/google/uuid"
)

type PaymentDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryRequestID uuid.UUID `gorm:"type:uuid;not null;index"`
	AmountMinor       int64     `gorm:"not null"`
	Currency          string    `gorm:"type:varchar(5);not null"`
	PaymentMethod     string    `gorm:"type:varchar(20);not null"`
	TransactionID     *string   `gorm:"type:varchar(255)"`
	Status            string    `gorm:"type:varchar(10);not null"`
	CreatedAt         time.Time `gorm:"autoCreateTime:false"`
}

func (PaymentDTO) TableName() string {
	return "payments"
}

func fromDomain(p *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:                p.ID().Bytes(),
		DeliveryRequestID: p.DeliveryRequestID().Bytes(),
		AmountMinor:       p.Amount().Minor(),
		Currency:          p.Currency(),
		PaymentMethod:     p.Method().String(),
		TransactionID:     p.TransactionID(),
		Status:            p.Status().String(),
		CreatedAt:         p.CreatedAt(),
	}
}

func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	requestID, err := kernel.UUIDFromBytes(dto.DeliveryRequestID[:])
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewMoney(dto.AmountMinor)
	if err != nil {
		return nil, err
	}

	method, err := payment.MethodFromString(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}

	status, err := payment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(id, requestID, amount, dto.Currency, method,
		dto.TransactionID, status, dto.CreatedAt.UTC())
}
