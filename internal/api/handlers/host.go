package handlers

import (
	"net/http"

	"InfraDash/internal/pkg/logger"
	"InfraDash/internal/sysinfo"

	"github.com/gin-gonic/gin"
)

// HostHandler serves information about the machine running the dashboard
type HostHandler struct {
	info      func() (*sysinfo.HostInfo, error)
	resources func(mount string) (*sysinfo.Resources, error)
}

// NewHostHandler creates a host handler backed by gopsutil
func NewHostHandler() *HostHandler {
	return &HostHandler{info: sysinfo.GetHostInfo, resources: sysinfo.GetResources}
}

// GetHostInfo handles the host information endpoint
func (h *HostHandler) GetHostInfo(c *gin.Context) {
	info, err := h.info()
	if err != nil {
		logger.Error("Failed to get host info", logger.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get host information",
		})
		return
	}

	logger.Debug("Served host info",
		logger.String("hostname", info.Hostname),
		logger.Uint64("uptime_seconds", info.UptimeSeconds),
		logger.Strings("ip_addresses", info.IPAddresses))
	c.JSON(http.StatusOK, info)
}

// GetResources handles the memory and disk usage endpoint. The mount query
// parameter selects the filesystem and defaults to "/".
func (h *HostHandler) GetResources(c *gin.Context) {
	mount := c.DefaultQuery("mount", "/")

	res, err := h.resources(mount)
	if err != nil {
		logger.Warn("Failed to get host resources",
			logger.String("mount", mount),
			logger.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get host resources",
		})
		return
	}

	if res.Memory.Status != "normal" || res.Disk.Status != "normal" {
		logger.Warn("Dashboard host is running low on resources",
			logger.Float64("memory_used_percent", res.Memory.UsedPercent),
			logger.Float64("disk_used_percent", res.Disk.UsedPercent),
			logger.String("mount", mount))
	}
	c.JSON(http.StatusOK, res)
}
