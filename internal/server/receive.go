package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	receiptdomain "github.com/smallbiznis/railtrack/internal/receipt/domain"
)

type receiveLotRequest struct {
	LotID     string `json:"lotId"`
	Scan      string `json:"scan"`
	DepotID   string `json:"depotId"`
	Inspector string `json:"inspector"`
	Notes     string `json:"notes"`
}

func (s *Server) ReceiveLot(c *gin.Context) {
	var req receiveLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.receiptSvc.Receive(c.Request.Context(), receiptdomain.ReceiveRequest{
		LotID:     strings.TrimSpace(req.LotID),
		Scan:      req.Scan,
		DepotID:   strings.TrimSpace(req.DepotID),
		Inspector: strings.TrimSpace(req.Inspector),
		Notes:     req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}
