// Package coreservice implements the SOAP layer of the Content Manager
// Core Service: envelope construction, fault handling, and one method per
// wire operation of the 2013 service contract.
package coreservice

// XML namespace URIs for the Core Service SOAP contract.
const (
	// NsSoap is the SOAP 1.2 envelope namespace.
	NsSoap = "http://www.w3.org/2003/05/soap-envelope"

	// NsAddressing is the WS-Addressing 1.0 namespace used by the wsHttp
	// endpoint binding.
	NsAddressing = "http://www.w3.org/2005/08/addressing"

	// NsCoreService is the Core Service 2013 service contract namespace.
	NsCoreService = "http://www.sdltridion.com/ContentManager/CoreService/2013"

	// NsData is the Content Manager data contract namespace.
	NsData = "http://www.sdltridion.com/ContentManager/R6"

	// NsXsi is the XML Schema Instance namespace.
	NsXsi = "http://www.w3.org/2001/XMLSchema-instance"
)

// WS-Addressing constants.
const (
	// AddressAnonymous is the WS-Addressing 1.0 anonymous reply address.
	AddressAnonymous = "http://www.w3.org/2005/08/addressing/anonymous"
)

// actionURI returns the WS-Addressing action for an ICoreService operation.
func actionURI(operation string) string {
	return NsCoreService + "/ICoreService/" + operation
}

// Action URIs for the wire operations used by this client.
var (
	// ActionIsExistingObject checks whether an item exists.
	ActionIsExistingObject = actionURI("IsExistingObject")

	// ActionRead reads a single item by TCM URI.
	ActionRead = actionURI("Read")

	// ActionGetSystemWideList lists items matching a system-wide filter.
	ActionGetSystemWideList = actionURI("GetSystemWideList")

	// ActionCreate creates a new item.
	ActionCreate = actionURI("Create")

	// ActionUpdate saves changes to an existing item.
	ActionUpdate = actionURI("Update")

	// ActionGetBusinessProcessTypes lists business process types for a
	// topology type. Requires Web 8.1 or later on the server.
	ActionGetBusinessProcessTypes = actionURI("GetBusinessProcessTypes")

	// ActionGetTcmURI translates an item identifier into another
	// publication's namespace.
	ActionGetTcmURI = actionURI("GetTcmUri")
)
