package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	installationdomain "github.com/smallbiznis/railtrack/internal/installation/domain"
)

type installProductRequest struct {
	ProductID     string                  `json:"productId"`
	Scan          string                  `json:"scan"`
	TrackLocation string                  `json:"trackLocation"`
	GPSLocation   *installationdomain.GPS `json:"gpsLocation"`
	InstalledBy   string                  `json:"installedBy"`
	Notes         string                  `json:"notes"`
}

func (s *Server) InstallProduct(c *gin.Context) {
	var req installProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.installationSvc.Install(c.Request.Context(), installationdomain.InstallRequest{
		ProductID:     strings.TrimSpace(req.ProductID),
		Scan:          req.Scan,
		TrackLocation: strings.TrimSpace(req.TrackLocation),
		GPSLocation:   req.GPSLocation,
		InstalledBy:   strings.TrimSpace(req.InstalledBy),
		Notes:         req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}
