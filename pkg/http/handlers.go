package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"

	"devicerelay.xyz/device-relay-service/pkg/common"
	"devicerelay.xyz/device-relay-service/pkg/models"
)

// PostHeartbeat accepts the open telemetry mapping as-is; merge-by-field
// happens in the registry. The response carries the pending command, or
// "none".
func (rs *RestfulServer) PostHeartbeat(c *gin.Context) {
	deviceID := c.Param("device_id")

	var attrs models.Attributes
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&attrs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	command := rs.Hub.Registry.ReportHeartbeat(deviceID, attrs)
	if command == "" {
		command = common.CommandNone
	}

	c.JSON(http.StatusOK, gin.H{"command": command})
}

type CommandRequest struct {
	Command string `json:"command"`
}

var commandRequestSchema = z.Struct(z.Shape{
	"Command": z.String().Required().Min(1),
})

func (rs *RestfulServer) PostCommand(c *gin.Context) {
	deviceID := c.Param("device_id")

	var req CommandRequest
	if err := commandRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	rs.Hub.Registry.QueueCommand(deviceID, req.Command)

	c.JSON(http.StatusOK, gin.H{"queued": true})
}

type DataRequest struct {
	Category string `json:"category"`
	Payload  any    `json:"payload"`
}

var dataCategorySchema = z.String().Required().Min(1)

func (rs *RestfulServer) PostData(c *gin.Context) {
	deviceID := c.Param("device_id")

	if !rs.CheckDeviceLimiter(deviceID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	// payload is string-or-object-or-array, so the body binds as loose JSON
	// and only the category goes through schema validation
	var req DataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var category string
	if err := dataCategorySchema.Parse(req.Category, &category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if err := rs.Hub.Ingest.IngestBatch(c.Request.Context(), deviceID, category, req.Payload); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"accepted": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accepted": true})
}

func (rs *RestfulServer) GetDeviceStatus(c *gin.Context) {
	c.JSON(http.StatusOK, rs.Hub.Registry.GetStatus(c.Param("device_id")))
}

func (rs *RestfulServer) ListDevices(c *gin.Context) {
	c.JSON(http.StatusOK, rs.Hub.Registry.ListAll())
}

func (rs *RestfulServer) GetRecords(c *gin.Context) {
	deviceID := c.Param("device_id")
	category := c.Param("category")

	blob, err := rs.Hub.Ingest.GetRecords(c.Request.Context(), deviceID, category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "application/json", blob)
}

type LimiterRequest struct {
	Rate  float64 `json:"rate"`
	Burst int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"rate":  z.Float64().Required(),
	"burst": z.Int().Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	deviceID := c.Param("device_id")

	var req LimiterRequest
	if err := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	rs.SetLimiter(deviceID, req.Rate, req.Burst)

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
