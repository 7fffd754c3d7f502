package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	_cpus = func(v float64) Resource {
		return NewResourceBuilder().WithName(ResourceCPUs).WithRole("*").WithValue(v).Build()
	}
	_mem = func(v float64) Resource {
		return NewResourceBuilder().WithName(ResourceMem).WithRole("*").WithValue(v).Build()
	}
	_ports = func(ports ...uint64) Resource {
		return NewResourceBuilder().WithName(ResourcePorts).WithRole("*").WithPorts(ports...).Build()
	}
)

func testOffer() Offer {
	return Offer{
		ID:       "offer-1",
		AgentID:  "agent-1",
		Hostname: "host-1",
		Resources: []Resource{
			_cpus(4.0),
			_mem(2048.0),
			_ports(31000, 31001, 31002),
		},
	}
}

func TestConsumeSubtractsMatchingEntries(t *testing.T) {
	offer := testOffer()
	result := offer.Consume([]Resource{_cpus(1.5), _mem(1024.0)})

	assert.InDelta(t, 2.5, result.Resources[0].Value, 1e-9)
	assert.InDelta(t, 1024.0, result.Resources[1].Value, 1e-9)
	// Receiver untouched.
	assert.InDelta(t, 4.0, offer.Resources[0].Value, 1e-9)
}

func TestConsumePorts(t *testing.T) {
	offer := testOffer()
	result := offer.Consume([]Resource{_ports(31001)})

	assert.Equal(t, []uint64{31000, 31002}, result.Resources[2].Ports)
	assert.Equal(t, []uint64{31000, 31001, 31002}, offer.Resources[2].Ports)
}

func TestConsumeIgnoresMissingEntries(t *testing.T) {
	offer := testOffer()
	gpus := NewResourceBuilder().WithName(ResourceGPUs).WithRole("*").WithValue(1.0).Build()
	otherRole := NewResourceBuilder().WithName(ResourceCPUs).WithRole("maint").WithValue(1.0).Build()

	result := offer.Consume([]Resource{gpus, otherRole})
	assert.Equal(t, offer.Resources, result.Resources)
}

func TestConsumeDistinguishesReservedEntries(t *testing.T) {
	reserved := _cpus(2.0)
	reserved.Reservation = &ReservationInfo{Principal: "sched"}

	offer := testOffer()
	offer.Resources = append(offer.Resources, reserved)

	used := _cpus(1.0)
	used.Reservation = &ReservationInfo{Principal: "sched"}
	result := offer.Consume([]Resource{used})

	// Unreserved cpus untouched, reserved entry reduced.
	assert.InDelta(t, 4.0, result.Resources[0].Value, 1e-9)
	assert.InDelta(t, 1.0, result.Resources[3].Value, 1e-9)
}

// Two reservations under the same name and role are distinct entries
// when they belong to different instances; consuming against one must
// never drain the other.
func TestConsumeMatchesReservationIdentity(t *testing.T) {
	reservedDisk := func(instanceID string, v float64) Resource {
		r := NewResourceBuilder().WithName(ResourceDisk).WithRole("sched").WithValue(v).Build()
		r.Reservation = &ReservationInfo{
			Principal: "sched",
			Labels:    map[string]string{"instance": instanceID},
		}
		return r
	}

	offer := Offer{
		ID: "offer-1",
		Resources: []Resource{
			reservedDisk("db.instance-a", 500.0),
			reservedDisk("db.instance-b", 500.0),
		},
	}

	result := offer.Consume([]Resource{reservedDisk("db.instance-b", 500.0)})
	assert.InDelta(t, 500.0, result.Resources[0].Value, 1e-9)
	assert.InDelta(t, 0.0, result.Resources[1].Value, 1e-9)

	// A different principal is a different reservation as well.
	other := reservedDisk("db.instance-a", 500.0)
	other.Reservation.Principal = "someone-else"
	result = offer.Consume([]Resource{other})
	assert.Equal(t, offer.Resources, result.Resources)
}

// Consumption must be associative and commutative: consuming A then B,
// B then A, and A union B in one step all yield the same residual, as
// operations are chained in sequence but evaluated independently.
func TestConsumeAssociativeCommutative(t *testing.T) {
	a := []Resource{_cpus(1.0), _ports(31000)}
	b := []Resource{_cpus(2.0), _mem(512.0), _ports(31002)}

	offer := testOffer()
	ab := offer.Consume(a).Consume(b)
	ba := offer.Consume(b).Consume(a)
	union := offer.Consume(append(append([]Resource{}, a...), b...))

	assert.Equal(t, ab.Resources, ba.Resources)
	assert.Equal(t, ab.Resources, union.Resources)
}

func TestConsumeDoesNotClamp(t *testing.T) {
	offer := testOffer()
	result := offer.Consume([]Resource{_cpus(10.0)})
	// Overcommit detection belongs to the round composition layer; the
	// model reports the arithmetic truth.
	assert.InDelta(t, -6.0, result.Resources[0].Value, 1e-9)
}
