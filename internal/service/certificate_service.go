package service

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"quizportal-backend/internal/model"
	"quizportal-backend/internal/repository"
	"quizportal-backend/utilities"
)

// CertificateService decides, per scored attempt, whether a certificate is
// warranted and assigns it a unique human-readable number. Issuance is
// best-effort from the submission flow's point of view: a failure here never
// fails the submission.
type CertificateService interface {
	// IssueIfEligible returns nil (no error) when the score is below the pass
	// mark. Re-invoking for an already certified attempt returns the existing
	// certificate.
	IssueIfEligible(attempt *model.QuizAttempt, username string) (*model.Certificate, error)
	GetCertificate(id uint) (*model.Certificate, error)
	GetCertificateByAttempt(attemptID uint) (*model.Certificate, error)
	GetUserCertificates(userID uint) ([]model.Certificate, error)
	RenderPDF(cert *model.Certificate) ([]byte, error)
}

type certificateService struct {
	certs    repository.CertificateRepository
	passMark float64
}

func NewCertificateService(certs repository.CertificateRepository, passMark float64) CertificateService {
	return &certificateService{certs: certs, passMark: passMark}
}

// InitCertificateEventListeners logs issuance events published on the global
// event bus by the submission flow.
func InitCertificateEventListeners() {
	utilities.GlobalEventBus.Subscribe("certificate_issued", func(data interface{}) {
		cert, ok := data.(*model.Certificate)
		if !ok {
			return
		}
		utilities.Info("certificate %s issued to user %d (attempt %d, %.1f%%)",
			cert.CertificateNumber, cert.UserID, cert.AttemptID, cert.Score)
	})
}

func (s *certificateService) IssueIfEligible(attempt *model.QuizAttempt, username string) (*model.Certificate, error) {
	if attempt.TotalScore < s.passMark {
		return nil, nil
	}

	// Idempotence: at most one certificate per attempt.
	existing, err := s.certs.GetByAttemptID(attempt.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	cert := &model.Certificate{
		UserID:    attempt.UserID,
		Username:  username,
		AttemptID: attempt.ID,
		Category:  attempt.Category,
		Score:     attempt.TotalScore,
		IssueDate: time.Now(),
	}
	if err := s.certs.CreateWithNumber(cert); err != nil {
		return nil, fmt.Errorf("failed to issue certificate: %w", err)
	}

	utilities.GlobalEventBus.Publish("certificate_issued", cert)
	return cert, nil
}

func (s *certificateService) GetCertificate(id uint) (*model.Certificate, error) {
	cert, err := s.certs.GetByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCertificateNotFound
	}
	return cert, err
}

func (s *certificateService) GetCertificateByAttempt(attemptID uint) (*model.Certificate, error) {
	cert, err := s.certs.GetByAttemptID(attemptID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCertificateNotFound
	}
	return cert, err
}

func (s *certificateService) GetUserCertificates(userID uint) ([]model.Certificate, error) {
	return s.certs.GetByUser(userID)
}

// RenderPDF produces the downloadable certificate document. Layout: landscape
// A4 with a framed title block, the holder's name, category, score and the
// certificate number and issue date at the bottom.
func (s *certificateService) RenderPDF(cert *model.Certificate) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	w, h := pdf.GetPageSize()
	pdf.SetFillColor(248, 250, 252)
	pdf.Rect(0, 0, w, h, "F")
	pdf.SetDrawColor(30, 64, 175)
	pdf.SetLineWidth(1.5)
	pdf.Rect(10, 10, w-20, h-20, "D")

	pdf.SetY(35)
	pdf.SetFont("Helvetica", "B", 32)
	pdf.SetTextColor(30, 64, 175)
	pdf.CellFormat(0, 14, "Certificate of Achievement", "", 1, "C", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 16)
	pdf.SetTextColor(55, 65, 81)
	pdf.CellFormat(0, 8, "This is to certify that", "", 1, "C", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(30, 64, 175)
	pdf.CellFormat(0, 10, cert.Username, "", 1, "C", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 16)
	pdf.SetTextColor(55, 65, 81)
	pdf.CellFormat(0, 8, "has successfully completed the", "", 1, "C", false, 0, "")

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(30, 64, 175)
	pdf.CellFormat(0, 9, fmt.Sprintf("%s Quiz", cert.Category), "", 1, "C", false, 0, "")

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 16)
	pdf.SetTextColor(55, 65, 81)
	pdf.CellFormat(0, 8, fmt.Sprintf("with a score of %.1f%%", cert.Score), "", 1, "C", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Certificate Number: %s", cert.CertificateNumber), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Issue Date: %s", cert.IssueDate.Format("02 Jan 2006")), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render certificate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
