package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/visitflow/visitflow/internal/domain/employee"
	"github.com/visitflow/visitflow/internal/service"
)

type EmployeeHandler struct {
	employeeSvc *service.EmployeeService
}

func NewEmployeeHandler(employeeSvc *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeSvc: employeeSvc}
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var req employeeRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, role := caller(c)
	created, err := h.employeeSvc.CreateEmployee(c.Request.Context(), &employee.CreateEmployeeCommand{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Title:     req.Title,
		CompanyID: req.CompanyID,
	}, callerID, role, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, toEmployeeResponse(created))
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	found, err := h.employeeSvc.GetEmployee(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toEmployeeResponse(found))
}

func (h *EmployeeHandler) List(c *gin.Context) {
	employees, err := h.employeeSvc.ListEmployees(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toEmployeeResponses(employees))
}

func (h *EmployeeHandler) ListByCompany(c *gin.Context) {
	companyID, ok := parseID(c, "id")
	if !ok {
		return
	}

	employees, err := h.employeeSvc.ListEmployeesByCompany(c.Request.Context(), companyID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toEmployeeResponses(employees))
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req employeeRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, role := caller(c)
	updated, err := h.employeeSvc.UpdateEmployee(c.Request.Context(), id, &employee.UpdateEmployeeCommand{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Title:     req.Title,
		CompanyID: req.CompanyID,
	}, callerID, role, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toEmployeeResponse(updated))
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	callerID, role := caller(c)
	if err := h.employeeSvc.DeleteEmployee(c.Request.Context(), id, callerID, role, c.ClientIP()); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
