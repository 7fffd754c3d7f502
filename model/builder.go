package model

// ResourceBuilder helps building a resource value.
type ResourceBuilder struct {
	resource Resource
}

// NewResourceBuilder creates a new ResourceBuilder.
func NewResourceBuilder() *ResourceBuilder {
	return &ResourceBuilder{}
}

// WithName sets resource name.
func (b *ResourceBuilder) WithName(name string) *ResourceBuilder {
	b.resource.Name = name
	return b
}

// WithRole sets the resource role.
func (b *ResourceBuilder) WithRole(role string) *ResourceBuilder {
	b.resource.Role = role
	return b
}

// WithValue sets the scalar value.
func (b *ResourceBuilder) WithValue(value float64) *ResourceBuilder {
	b.resource.Value = value
	return b
}

// WithPorts sets the port set.
func (b *ResourceBuilder) WithPorts(ports ...uint64) *ResourceBuilder {
	b.resource.Ports = ports
	return b
}

// WithReservation marks the resource as reserved.
func (b *ResourceBuilder) WithReservation(reservation *ReservationInfo) *ResourceBuilder {
	b.resource.Reservation = reservation
	return b
}

// WithDisk marks the resource as backing a persistent volume.
func (b *ResourceBuilder) WithDisk(disk *DiskInfo) *ResourceBuilder {
	b.resource.Disk = disk
	return b
}

// Build returns the resource built so far.
func (b *ResourceBuilder) Build() Resource {
	return b.resource
}
