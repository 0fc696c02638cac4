package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"devicerelay.xyz/device-relay-service/pkg/common"
	"devicerelay.xyz/device-relay-service/pkg/hub"
	"devicerelay.xyz/device-relay-service/pkg/relay"
)

type RestfulServer struct {
	Server           *gin.Engine
	Hub              *hub.Hub
	Relay            *relay.Relay
	RateLimiterStore *hub.RateLimiterStore
}

func (rs *RestfulServer) GetLimiter(deviceID string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(deviceID)
	}
}

func (rs *RestfulServer) CheckDeviceLimiter(deviceID string) bool {
	limiter := rs.GetLimiter(deviceID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) SetLimiter(deviceID string, deviceRate float64, deviceBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(deviceID, rate.Limit(deviceRate), deviceBurst)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// the dashboard is served from another origin; device identity is the
	// only admission criterion
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (rs *RestfulServer) JoinChannel(c *gin.Context) {
	deviceID := c.Param("device_id")

	sock, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		common.GetLoggerWith(common.LoggerNameRestfulServer).Warn(
			"Failed to upgrade relay connection",
			zap.String("device_id", deviceID),
			zap.Error(err))
		return
	}

	relay.Serve(rs.Relay, deviceID, sock)
}

func (rs *RestfulServer) Setup() {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	rs.Server.Use(cors.New(corsConfig))

	rs.Server.GET("/healthz", rs.HealthCheck)

	rs.Server.GET("/devices", rs.ListDevices)

	device := rs.Server.Group("/devices/:device_id")
	{
		device.POST("/heartbeat", rs.PostHeartbeat)
		device.POST("/command", rs.PostCommand)
		device.POST("/data", rs.PostData)
		device.GET("", rs.GetDeviceStatus)
		device.GET("/records/:category", rs.GetRecords)
		device.POST("/limiter", rs.PostLimiter)
	}

	rs.Server.GET("/ws/:device_id", rs.JoinChannel)
}
