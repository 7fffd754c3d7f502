package model

// Offer is an immutable snapshot of the resources one cluster node
// makes available for a single matching round.
type Offer struct {
	ID        OfferID
	AgentID   AgentID
	Hostname  string
	Resources []Resource
}

// Consume returns a new offer snapshot with used subtracted from the
// matching resource entries. The receiver is left untouched, so
// residual views can be chained across multiple operations evaluated
// against the same offer.
func (o Offer) Consume(used []Resource) Offer {
	o.Resources = ConsumeResources(o.Resources, used)
	return o
}
