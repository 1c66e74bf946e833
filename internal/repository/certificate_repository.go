package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"quizportal-backend/internal/db"
	"quizportal-backend/internal/model"
)

type CertificateRepository interface {
	GetByAttemptID(attemptID uint) (*model.Certificate, error)
	GetByID(id uint) (*model.Certificate, error)
	GetByUser(userID uint) ([]model.Certificate, error)
	// CreateWithNumber assigns the next CERT-YYYYMM-NNNN number from the
	// shared counter and inserts the certificate, both in one transaction.
	CreateWithNumber(cert *model.Certificate) error
}

type certificateRepository struct{}

func NewCertificateRepository() CertificateRepository {
	return &certificateRepository{}
}

func (r *certificateRepository) GetByAttemptID(attemptID uint) (*model.Certificate, error) {
	var cert model.Certificate
	err := db.GetDB().Where("attempt_id = ?", attemptID).First(&cert).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &cert, nil
}

func (r *certificateRepository) GetByID(id uint) (*model.Certificate, error) {
	var cert model.Certificate
	err := db.GetDB().First(&cert, id).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &cert, nil
}

func (r *certificateRepository) GetByUser(userID uint) ([]model.Certificate, error) {
	var certs []model.Certificate
	err := db.GetDB().Where("user_id = ?", userID).Order("created_at desc").Find(&certs).Error
	return certs, err
}

func (r *certificateRepository) CreateWithNumber(cert *model.Certificate) error {
	return db.GetDB().Transaction(func(tx *gorm.DB) error {
		// Lock the counter row so two simultaneously finishing attempts
		// cannot be assigned the same sequence number.
		var counter model.CertificateCounter
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&counter, 1).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			counter = model.CertificateCounter{ID: 1, Sequence: 0}
			if err := tx.Create(&counter).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		counter.Sequence++
		if err := tx.Model(&model.CertificateCounter{}).
			Where("id = ?", counter.ID).
			Update("sequence", counter.Sequence).Error; err != nil {
			return err
		}

		cert.CertificateNumber = fmt.Sprintf("CERT-%d%02d-%04d",
			cert.IssueDate.Year(), int(cert.IssueDate.Month()), counter.Sequence)
		return tx.Create(cert).Error
	})
}
