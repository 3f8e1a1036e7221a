package core

import "sync"

// DeviceFactory builds a fresh device for one block.
type DeviceFactory func() Device

// DeviceRegistry maps block kind names, as emitted by the code generator,
// to device factories.
type DeviceRegistry struct {
	mu        sync.RWMutex
	factories map[string]DeviceFactory
	order     []string
}

var globalDevices = newBuiltinRegistry()

// NewDeviceRegistry creates an empty registry
func NewDeviceRegistry() *DeviceRegistry {
	return &DeviceRegistry{
		factories: make(map[string]DeviceFactory),
	}
}

func newBuiltinRegistry() *DeviceRegistry {
	r := NewDeviceRegistry()
	r.Register("inputGPIOblk", func() Device { return &InputGPIO{} })
	r.Register("outputGPIOblk", func() Device { return &OutputGPIO{} })
	r.Register("buttonblk", func() Device { return &Button{} })
	r.Register("ledblk", func() Device { return &LED{} })
	r.Register("adcblk", func() Device { return &AnalogIn{} })
	r.Register("epwmblk", func() Device { return &EPWM{} })
	r.Register("delfinoPlotblk", func() Device { return &Plot{} })
	return r
}

// Register adds or replaces the factory for kind
func (r *DeviceRegistry) Register(kind string, f DeviceFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[kind]; !exists {
		r.order = append(r.order, kind)
	}
	r.factories[kind] = f
}

// New builds a device of the given kind
func (r *DeviceRegistry) New(kind string) (Device, error) {
	r.mu.RLock()
	f, ok := r.factories[kind]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrUnknownDevice
	}
	return f(), nil
}

// Kinds returns the registered kinds in registration order
func (r *DeviceRegistry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// RegisterDevice adds a device kind to the global registry.
func RegisterDevice(kind string, f DeviceFactory) {
	globalDevices.Register(kind, f)
}

// GetDeviceRegistry returns the global device registry
func GetDeviceRegistry() *DeviceRegistry {
	return globalDevices
}
