package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"quizportal-backend/internal/model"
	"quizportal-backend/internal/service"
	"quizportal-backend/utilities"
)

type CertificateController struct {
	certService service.CertificateService
}

func NewCertificateController(certService service.CertificateService) *CertificateController {
	return &CertificateController{certService: certService}
}

func (cc *CertificateController) GetUserCertificates(c *gin.Context) {
	userID, _ := currentUser(c)

	certs, err := cc.certService.GetUserCertificates(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching certificates"})
		return
	}
	c.JSON(http.StatusOK, certs)
}

func (cc *CertificateController) GetCertificate(c *gin.Context) {
	cert, ok := cc.ownedCertificate(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, cert)
}

// GetCertificateByAttempt resolves the certificate issued for one attempt.
func (cc *CertificateController) GetCertificateByAttempt(c *gin.Context) {
	userID, _ := currentUser(c)

	attemptID, err := strconv.ParseUint(c.Param("attemptId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid attempt id"})
		return
	}

	cert, err := cc.certService.GetCertificateByAttempt(uint(attemptID))
	if err != nil || cert.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": service.ErrCertificateNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, cert)
}

func (cc *CertificateController) DownloadCertificate(c *gin.Context) {
	cert, ok := cc.ownedCertificate(c)
	if !ok {
		return
	}

	pdf, err := cc.certService.RenderPDF(cert)
	if err != nil {
		utilities.Error("certificate PDF rendering failed for %s: %v", cert.CertificateNumber, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error generating certificate PDF"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=certificate-%s.pdf", cert.CertificateNumber))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// ownedCertificate loads the :id certificate and enforces that it belongs to
// the authenticated user; foreign certificates read as not found.
func (cc *CertificateController) ownedCertificate(c *gin.Context) (*model.Certificate, bool) {
	userID, _ := currentUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid certificate id"})
		return nil, false
	}

	cert, err := cc.certService.GetCertificate(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrCertificateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching certificate"})
		}
		return nil, false
	}
	if cert.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": service.ErrCertificateNotFound.Error()})
		return nil, false
	}
	return cert, true
}
