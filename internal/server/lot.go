package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	lotdomain "github.com/smallbiznis/railtrack/internal/lot/domain"
)

type createLotRequest struct {
	ManufacturerID string `json:"manufacturerId"`
	ProductType    string `json:"productType"`
	Quantity       int    `json:"quantity"`
	WarrantyMonths int    `json:"warrantyMonths"`
}

func (s *Server) CreateLot(c *gin.Context) {
	var req createLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.lotSvc.Create(c.Request.Context(), lotdomain.CreateRequest{
		ManufacturerID: strings.TrimSpace(req.ManufacturerID),
		ProductType:    strings.TrimSpace(req.ProductType),
		Quantity:       req.Quantity,
		WarrantyMonths: req.WarrantyMonths,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"lot":        resp.Lot,
		"productIds": resp.ProductIDs,
		"productQrs": resp.ProductCodes,
		"packageQr":  resp.PackageCode,
	})
}

func (s *Server) ListLotsByManufacturer(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.lotSvc.ListByManufacturer(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"lots": resp})
}
