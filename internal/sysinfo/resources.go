package sysinfo

import (
	"fmt"

	"github.com/shirou/gopsutil/disk"
	"github.com/shirou/gopsutil/mem"
)

// Usage thresholds in percent
const (
	WarningThreshold  = 80.0
	CriticalThreshold = 90.0
)

// Usage is a used/total pair with its level against the thresholds
type Usage struct {
	Total       uint64  `json:"total"`
	Used        uint64  `json:"used"`
	Free        uint64  `json:"free"`
	UsedPercent float64 `json:"used_percent"`
	Status      string  `json:"status"`
}

// Resources summarises memory, swap and root filesystem usage
type Resources struct {
	Memory Usage  `json:"memory"`
	Swap   *Usage `json:"swap,omitempty"`
	Disk   Usage  `json:"disk"`
	Mount  string `json:"mount"`
}

// GetResources reads memory and disk usage for mount
func GetResources(mount string) (*Resources, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to get memory info: %w", err)
	}

	du, err := disk.Usage(mount)
	if err != nil {
		return nil, fmt.Errorf("failed to get disk usage for %s: %w", mount, err)
	}

	res := &Resources{
		Memory: newUsage(vm.Total, vm.Used, vm.Available, vm.UsedPercent),
		Disk:   newUsage(du.Total, du.Used, du.Free, du.UsedPercent),
		Mount:  mount,
	}

	// Swap is optional, containers often report none
	if sw, err := mem.SwapMemory(); err == nil && sw != nil && sw.Total > 0 {
		u := newUsage(sw.Total, sw.Used, sw.Free, float64(sw.Used)/float64(sw.Total)*100)
		res.Swap = &u
	}

	return res, nil
}

func newUsage(total, used, free uint64, percent float64) Usage {
	return Usage{
		Total:       total,
		Used:        used,
		Free:        free,
		UsedPercent: percent,
		Status:      Level(percent),
	}
}

// Level maps a used percentage to normal, warning or critical
func Level(percent float64) string {
	switch {
	case percent >= CriticalThreshold:
		return "critical"
	case percent >= WarningThreshold:
		return "warning"
	default:
		return "normal"
	}
}
