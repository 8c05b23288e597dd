// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// AdapterInfo describes one GPU adapter visible to the HAL.
type AdapterInfo struct {
	Name       string
	DeviceType string
}

// Adapters enumerates the GPU adapters on this machine. Each call opens
// and destroys a short-lived instance, so callers should cache results.
func Adapters() ([]AdapterInfo, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("wgpu: vulkan backend not registered")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create instance: %w", err)
	}
	defer instance.Destroy()

	adapters := instance.EnumerateAdapters(nil)
	infos := make([]AdapterInfo, 0, len(adapters))
	for i := range adapters {
		infos = append(infos, AdapterInfo{
			Name:       adapters[i].Info.Name,
			DeviceType: deviceTypeString(adapters[i].Info.DeviceType),
		})
	}
	return infos, nil
}

func deviceTypeString(t gputypes.DeviceType) string {
	switch t {
	case gputypes.DeviceTypeIntegratedGPU:
		return "integrated"
	case gputypes.DeviceTypeDiscreteGPU:
		return "discrete"
	default:
		return "other"
	}
}
