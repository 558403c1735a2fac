// Package sysinfo reports facts about the machine the dashboard runs on
package sysinfo

import (
	"fmt"
	"net"
	"time"

	"github.com/shirou/gopsutil/host"
)

// HostInfo represents general information about the dashboard host
type HostInfo struct {
	Hostname        string   `json:"hostname"`
	Uptime          string   `json:"uptime"`
	UptimeSeconds   uint64   `json:"uptime_seconds"`
	BootTime        string   `json:"boot_time"`
	CurrentTime     string   `json:"current_time"`
	ProcessCount    uint64   `json:"process_count"`
	OS              string   `json:"os"`
	Platform        string   `json:"platform"`
	PlatformVersion string   `json:"platform_version"`
	KernelVersion   string   `json:"kernel_version"`
	IPAddresses     []string `json:"ip_addresses"`
}

// GetHostInfo collects host information through gopsutil
func GetHostInfo() (*HostInfo, error) {
	stat, err := host.Info()
	if err != nil {
		return nil, fmt.Errorf("failed to get host info: %w", err)
	}

	ips, err := ipAddresses()
	if err != nil {
		return nil, fmt.Errorf("failed to get IP addresses: %w", err)
	}

	return &HostInfo{
		Hostname:        stat.Hostname,
		Uptime:          FormatUptime(stat.Uptime),
		UptimeSeconds:   stat.Uptime,
		BootTime:        time.Unix(int64(stat.BootTime), 0).UTC().Format(time.RFC3339),
		CurrentTime:     time.Now().Format(time.RFC3339),
		ProcessCount:    stat.Procs,
		OS:              stat.OS,
		Platform:        stat.Platform,
		PlatformVersion: stat.PlatformVersion,
		KernelVersion:   stat.KernelVersion,
		IPAddresses:     ips,
	}, nil
}

// FormatUptime renders seconds as "D days, H hours, M minutes"
func FormatUptime(seconds uint64) string {
	return fmt.Sprintf("%d days, %d hours, %d minutes",
		seconds/86400, (seconds%86400)/3600, (seconds%3600)/60)
}

// ipAddresses lists the addresses of every up, non-loopback interface
func ipAddresses() ([]string, error) {
	ips := []string{}
	interfaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	for _, iface := range interfaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			return nil, err
		}

		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}
			if ip == nil || ip.IsLoopback() {
				continue
			}
			ips = append(ips, ip.String())
		}
	}
	return ips, nil
}
