package coreservice

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/smnsjas/go-coreservice/coreservice/transport"
)

// Client speaks the Core Service 2013 SOAP contract against a single
// endpoint. It is stateless apart from the transport connection pool; all
// session semantics live in the session package.
type Client struct {
	endpoint  string
	transport *transport.HTTPTransport
}

// NewClient creates a new Core Service SOAP client.
func NewClient(endpoint string, tr *transport.HTTPTransport) *Client {
	return &Client{
		endpoint:  endpoint,
		transport: tr,
	}
}

// Endpoint returns the service endpoint URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// IsExistingObject checks whether the item identified by id exists.
func (c *Client) IsExistingObject(ctx context.Context, id string) (bool, error) {
	body := `<IsExistingObject xmlns="` + NsCoreService + `">
  <id>` + xmlEscape(id) + `</id>
</IsExistingObject>`

	respBody, err := c.call(ctx, ActionIsExistingObject, []byte(body))
	if err != nil {
		return false, fmt.Errorf("is existing object: %w", err)
	}

	var resp isExistingObjectResponse
	if err := xml.Unmarshal(respBody, &resp); err != nil {
		return false, fmt.Errorf("parse is existing object response: %w", err)
	}
	return resp.Body.Response.Result, nil
}

// Read reads a single item by TCM URI.
func (c *Client) Read(ctx context.Context, id string) (*ItemData, error) {
	body := `<Read xmlns="` + NsCoreService + `">
  <id>` + xmlEscape(id) + `</id>
  <readOptions xmlns:i="` + NsXsi + `" i:nil="true"/>
</Read>`

	respBody, err := c.call(ctx, ActionRead, []byte(body))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", id, err)
	}

	var resp readResponse
	if err := xml.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("parse read response: %w", err)
	}
	return &resp.Body.Response.Result, nil
}

// GetPublications lists all publications, optionally filtered by
// publication-type name (e.g. "Web"). An empty filter returns all.
func (c *Client) GetPublications(ctx context.Context, typeFilter string) ([]ItemData, error) {
	var filter strings.Builder
	filter.WriteString(`<filterData xmlns:i="` + NsXsi + `" xmlns:d="` + NsData + `" i:type="d:PublicationsFilterData">`)
	if typeFilter != "" {
		filter.WriteString(`<d:PublicationTypeName>` + xmlEscape(typeFilter) + `</d:PublicationTypeName>`)
	}
	filter.WriteString(`</filterData>`)

	body := `<GetSystemWideList xmlns="` + NsCoreService + `">
  ` + filter.String() + `
</GetSystemWideList>`

	respBody, err := c.call(ctx, ActionGetSystemWideList, []byte(body))
	if err != nil {
		return nil, fmt.Errorf("get publications: %w", err)
	}

	var resp systemWideListResponse
	if err := xml.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("parse publication list response: %w", err)
	}
	return resp.Body.Response.Items, nil
}

// Create submits a new publication and returns the server's read-back of
// the created item.
func (c *Client) Create(ctx context.Context, p PublicationInput) (*ItemData, error) {
	body := `<Create xmlns="` + NsCoreService + `">
  ` + marshalPublication(p) + `
  <readBackOptions xmlns:d="` + NsData + `"><d:LoadFlags>None</d:LoadFlags></readBackOptions>
</Create>`

	respBody, err := c.call(ctx, ActionCreate, []byte(body))
	if err != nil {
		return nil, fmt.Errorf("create: %w", err)
	}

	var resp createResponse
	if err := xml.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("parse create response: %w", err)
	}
	return &resp.Body.Response.Result, nil
}

// Update saves changes to an existing publication and returns the server's
// read-back of the updated item.
func (c *Client) Update(ctx context.Context, p PublicationInput) (*ItemData, error) {
	body := `<Update xmlns="` + NsCoreService + `">
  ` + marshalPublication(p) + `
  <readBackOptions xmlns:d="` + NsData + `"><d:LoadFlags>None</d:LoadFlags></readBackOptions>
</Update>`

	respBody, err := c.call(ctx, ActionUpdate, []byte(body))
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", p.ID, err)
	}

	var resp updateResponse
	if err := xml.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("parse update response: %w", err)
	}
	return &resp.Body.Response.Result, nil
}

// GetBusinessProcessTypes lists the business process types defined for a
// topology type. The operation exists on Web 8.1 and later servers only;
// older servers answer with an ActionNotSupported fault.
func (c *Client) GetBusinessProcessTypes(ctx context.Context, topologyTypeID string) ([]BusinessProcessTypeData, error) {
	body := `<GetBusinessProcessTypes xmlns="` + NsCoreService + `">
  <topologyTypeId>` + xmlEscape(topologyTypeID) + `</topologyTypeId>
</GetBusinessProcessTypes>`

	respBody, err := c.call(ctx, ActionGetBusinessProcessTypes, []byte(body))
	if err != nil {
		return nil, fmt.Errorf("get business process types: %w", err)
	}

	var resp businessProcessTypesResponse
	if err := xml.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("parse business process types response: %w", err)
	}
	return resp.Body.Response.Items, nil
}

// GetTcmURI asks the server to translate id into the namespace of the
// publication identified by publicationID (a TCM URI such as "tcm:0-123-1").
// A version greater than zero requests that specific version; zero or
// negative means "preserve the original suffix shape".
func (c *Client) GetTcmURI(ctx context.Context, id, publicationID string, version int) (string, error) {
	var ver string
	if version > 0 {
		ver = `<version>` + strconv.Itoa(version) + `</version>`
	} else {
		ver = `<version xmlns:i="` + NsXsi + `" i:nil="true"/>`
	}

	body := `<GetTcmUri xmlns="` + NsCoreService + `">
  <id>` + xmlEscape(id) + `</id>
  <publicationId>` + xmlEscape(publicationID) + `</publicationId>
  ` + ver + `
</GetTcmUri>`

	respBody, err := c.call(ctx, ActionGetTcmURI, []byte(body))
	if err != nil {
		return "", fmt.Errorf("get tcm uri: %w", err)
	}

	var resp getTcmURIResponse
	if err := xml.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("parse get tcm uri response: %w", err)
	}
	return resp.Body.Response.Result, nil
}

// call builds the envelope for one operation, sends it, and checks the
// response for a SOAP fault.
func (c *Client) call(ctx context.Context, action string, body []byte) ([]byte, error) {
	env := NewEnvelope().
		WithAction(action).
		WithTo(c.endpoint).
		WithMessageID("uuid:" + strings.ToUpper(uuid.New().String())).
		WithReplyTo(AddressAnonymous).
		WithBody(body)

	payload, err := env.Marshal()
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}

	respBody, err := c.transport.Post(ctx, c.endpoint, payload)
	if err != nil {
		return nil, err
	}

	if err := CheckFault(respBody); err != nil {
		return nil, fmt.Errorf("coreservice: %w", err)
	}

	return respBody, nil
}

// marshalPublication renders a PublicationData element for Create/Update.
// Element order follows the data contract.
func marshalPublication(p PublicationInput) string {
	var b strings.Builder
	b.WriteString(`<data xmlns:i="` + NsXsi + `" xmlns:d="` + NsData + `" i:type="d:PublicationData">`)

	if p.BusinessProcessType != "" {
		b.WriteString(`<d:BusinessProcessType><d:IdRef>` + xmlEscape(p.BusinessProcessType) + `</d:IdRef></d:BusinessProcessType>`)
	}
	b.WriteString(`<d:Id>` + xmlEscape(p.ID) + `</d:Id>`)
	if p.Key != "" {
		b.WriteString(`<d:Key>` + xmlEscape(p.Key) + `</d:Key>`)
	}
	if p.MultimediaPath != "" {
		b.WriteString(`<d:MultimediaPath>` + xmlEscape(p.MultimediaPath) + `</d:MultimediaPath>`)
	}
	if p.MultimediaURL != "" {
		b.WriteString(`<d:MultimediaUrl>` + xmlEscape(p.MultimediaURL) + `</d:MultimediaUrl>`)
	}
	if p.Parents != nil {
		b.WriteString(`<d:Parents>`)
		for _, parent := range p.Parents {
			b.WriteString(`<d:LinkToRepositoryData><d:IdRef>` + xmlEscape(parent) + `</d:IdRef></d:LinkToRepositoryData>`)
		}
		b.WriteString(`</d:Parents>`)
	}
	if p.PublicationPath != "" {
		b.WriteString(`<d:PublicationPath>` + xmlEscape(p.PublicationPath) + `</d:PublicationPath>`)
	}
	if p.PublicationURL != "" {
		b.WriteString(`<d:PublicationUrl>` + xmlEscape(p.PublicationURL) + `</d:PublicationUrl>`)
	}
	if p.Title != "" {
		b.WriteString(`<d:Title>` + xmlEscape(p.Title) + `</d:Title>`)
	}

	b.WriteString(`</data>`)
	return b.String()
}

// xmlEscape escapes a string for inclusion in element content.
func xmlEscape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// Response types for XML parsing.

type isExistingObjectResponse struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    struct {
		Response struct {
			Result bool `xml:"IsExistingObjectResult"`
		} `xml:"IsExistingObjectResponse"`
	} `xml:"Body"`
}

type readResponse struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    struct {
		Response struct {
			Result ItemData `xml:"ReadResult"`
		} `xml:"ReadResponse"`
	} `xml:"Body"`
}

type systemWideListResponse struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    struct {
		Response struct {
			Items []ItemData `xml:"GetSystemWideListResult>IdentifiableObjectData"`
		} `xml:"GetSystemWideListResponse"`
	} `xml:"Body"`
}

type createResponse struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    struct {
		Response struct {
			Result ItemData `xml:"CreateResult"`
		} `xml:"CreateResponse"`
	} `xml:"Body"`
}

type updateResponse struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    struct {
		Response struct {
			Result ItemData `xml:"UpdateResult"`
		} `xml:"UpdateResponse"`
	} `xml:"Body"`
}

type businessProcessTypesResponse struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    struct {
		Response struct {
			Items []BusinessProcessTypeData `xml:"GetBusinessProcessTypesResult>BusinessProcessTypeData"`
		} `xml:"GetBusinessProcessTypesResponse"`
	} `xml:"Body"`
}

type getTcmURIResponse struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    struct {
		Response struct {
			Result string `xml:"GetTcmUriResult"`
		} `xml:"GetTcmUriResponse"`
	} `xml:"Body"`
}
