package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	inspectiondomain "github.com/smallbiznis/railtrack/internal/inspection/domain"
)

type submitInspectionRequest struct {
	ProductID      string                   `json:"productId"`
	Scan           string                   `json:"scan"`
	Inspector      string                   `json:"inspector"`
	Results        inspectiondomain.Results `json:"results"`
	Failure        bool                     `json:"failure"`
	Recommendation string                   `json:"recommendation"`
	GPSLocation    *inspectiondomain.GPS    `json:"gpsLocation"`
	Photos         []string                 `json:"photos"`
}

func (s *Server) SubmitInspection(c *gin.Context) {
	var req submitInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.inspectionSvc.Submit(c.Request.Context(), inspectiondomain.SubmitRequest{
		ProductID:      strings.TrimSpace(req.ProductID),
		Scan:           req.Scan,
		Inspector:      strings.TrimSpace(req.Inspector),
		Results:        req.Results,
		Failure:        req.Failure,
		Recommendation: req.Recommendation,
		GPSLocation:    req.GPSLocation,
		Photos:         req.Photos,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"inspection": resp.Inspection,
		"product":    resp.Product,
	})
}

func (s *Server) GetProductPredictions(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	predictions, err := s.inspectionSvc.Predictions(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"predictions": predictions})
}
