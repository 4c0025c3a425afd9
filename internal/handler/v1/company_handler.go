package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/visitflow/visitflow/internal/domain/company"
	"github.com/visitflow/visitflow/internal/handler/middleware"
	"github.com/visitflow/visitflow/internal/service"
)

type CompanyHandler struct {
	companySvc *service.CompanyService
}

func NewCompanyHandler(companySvc *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companySvc: companySvc}
}

func caller(c *gin.Context) (uuid.UUID, string) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return uuid.Nil, ""
	}
	return claims.AdminID, string(claims.Role)
}

func (h *CompanyHandler) Create(c *gin.Context) {
	var req companyRequest
	if !bindJSON(c, &req) {
		return
	}

	id, role := caller(c)
	created, err := h.companySvc.CreateCompany(c.Request.Context(), &company.CreateCompanyCommand{Name: req.Name}, id, role, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, toCompanyResponse(created))
}

func (h *CompanyHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	found, err := h.companySvc.GetCompany(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toCompanyResponse(found))
}

func (h *CompanyHandler) List(c *gin.Context) {
	companies, err := h.companySvc.ListCompanies(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toCompanyResponses(companies))
}

func (h *CompanyHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req companyRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, role := caller(c)
	updated, err := h.companySvc.UpdateCompany(c.Request.Context(), id, &company.UpdateCompanyCommand{Name: req.Name}, callerID, role, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toCompanyResponse(updated))
}

func (h *CompanyHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	callerID, role := caller(c)
	if err := h.companySvc.DeleteCompany(c.Request.Context(), id, callerID, role, c.ClientIP()); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
