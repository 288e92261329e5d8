package entities

// Capability is a named permission string an actor must hold to perform an operation.
type Capability string

const (
	CapabilityQuotationCreate  Capability = "cotizaciones.crear"
	CapabilityQuotationView    Capability = "cotizaciones.ver"
	CapabilityQuotationSend    Capability = "cotizaciones.enviar"
	CapabilityQuotationConvert Capability = "cotizaciones.remisionar"
	// Cancelling a quotation reuses the deletion capability.
	CapabilityQuotationCancel Capability = "cotizaciones.eliminar"
	CapabilityOrderView       Capability = "pedidos.ver"
	CapabilityRemissionView   Capability = "remisiones.ver"
)

// Actor is the authenticated caller of a lifecycle operation.
//
// Capabilities is the permission set resolved by the auth layer. The lifecycle
// engine never reads it directly; it asks the permission oracle.
type Actor struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	Name         string       `json:"name"`
	Capabilities []Capability `json:"capabilities"`
}

func (a Actor) Holds(c Capability) bool {
	for _, held := range a.Capabilities {
		if held == c {
			return true
		}
	}
	return false
}
