package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/visitflow/visitflow/internal/domain/visitor"
	"github.com/visitflow/visitflow/internal/service"
)

type VisitorHandler struct {
	visitorSvc *service.VisitorService
}

func NewVisitorHandler(visitorSvc *service.VisitorService) *VisitorHandler {
	return &VisitorHandler{visitorSvc: visitorSvc}
}

func (h *VisitorHandler) Register(c *gin.Context) {
	var req visitorRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, role := caller(c)
	created, err := h.visitorSvc.RegisterVisitor(c.Request.Context(), &visitor.CreateVisitorCommand{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		CompanyName: req.CompanyName,
	}, callerID, role, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, toVisitorResponse(created))
}

func (h *VisitorHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	found, err := h.visitorSvc.GetVisitor(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toVisitorResponse(found))
}

func (h *VisitorHandler) List(c *gin.Context) {
	visitors, err := h.visitorSvc.ListVisitors(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toVisitorResponses(visitors))
}

func (h *VisitorHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req visitorRequest
	if !bindJSON(c, &req) {
		return
	}

	callerID, role := caller(c)
	updated, err := h.visitorSvc.UpdateVisitor(c.Request.Context(), id, &visitor.UpdateVisitorCommand{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		CompanyName: req.CompanyName,
	}, callerID, role, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toVisitorResponse(updated))
}

func (h *VisitorHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	callerID, role := caller(c)
	if err := h.visitorSvc.DeleteVisitor(c.Request.Context(), id, callerID, role, c.ClientIP()); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
