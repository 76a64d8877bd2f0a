package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	manufacturerdomain "github.com/smallbiznis/railtrack/internal/manufacturer/domain"
)

type createManufacturerRequest struct {
	ManufacturerID string                     `json:"manufacturerId"`
	Name           string                     `json:"name"`
	Contact        manufacturerdomain.Contact `json:"contact"`
	PublicKey      string                     `json:"publicKey"`
}

func (s *Server) CreateManufacturer(c *gin.Context) {
	var req createManufacturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.manufacturerSvc.Create(c.Request.Context(), manufacturerdomain.CreateRequest{
		ManufacturerID: strings.TrimSpace(req.ManufacturerID),
		Name:           strings.TrimSpace(req.Name),
		Contact:        req.Contact,
		PublicKey:      strings.TrimSpace(req.PublicKey),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) GetManufacturer(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.manufacturerSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateManufacturerContact(c *gin.Context) {
	var req struct {
		Contact manufacturerdomain.Contact `json:"contact"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.manufacturerSvc.UpdateContact(c.Request.Context(), manufacturerdomain.UpdateContactRequest{
		ManufacturerID: strings.TrimSpace(c.Param("id")),
		Contact:        req.Contact,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
