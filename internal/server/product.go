package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	productdomain "github.com/smallbiznis/railtrack/internal/product/domain"
	"github.com/smallbiznis/railtrack/pkg/db/pagination"
)

func (s *Server) ListProducts(c *gin.Context) {
	var query struct {
		Status         string `form:"status"`
		ManufacturerID string `form:"manufacturerId"`
		LotID          string `form:"lotId"`
		ProductID      string `form:"productId"`
		PageToken      string `form:"page_token"`
		PageSize       int    `form:"page_size"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.productSvc.List(c.Request.Context(), productdomain.ListRequest{
		Status:         strings.TrimSpace(query.Status),
		ManufacturerID: strings.TrimSpace(query.ManufacturerID),
		LotID:          strings.TrimSpace(query.LotID),
		ProductID:      strings.TrimSpace(query.ProductID),
		Pagination: pagination.Pagination{
			PageToken: strings.TrimSpace(query.PageToken),
			PageSize:  query.PageSize,
		},
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": resp.Products,
		"pageInfo": resp.PageInfo,
	})
}

func (s *Server) GetProduct(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.productSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product":      resp.Product,
		"installation": resp.Installation,
		"depotReceipt": resp.DepotReceipt,
		"inspections":  resp.Inspections,
	})
}

func (s *Server) EscalateProduct(c *gin.Context) {
	var req struct {
		EscalatedBy string `json:"escalatedBy"`
	}
	// Body is optional; an empty escalation request is still valid.
	_ = c.ShouldBindJSON(&req)

	resp, err := s.productSvc.Escalate(c.Request.Context(), productdomain.EscalateRequest{
		ProductID:   strings.TrimSpace(c.Param("id")),
		EscalatedBy: strings.TrimSpace(req.EscalatedBy),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": resp})
}
