package coreservice

// Link references another repository item by TCM URI, matching the
// LinkToRepositoryData data contract.
type Link struct {
	IDRef string `xml:"IdRef"`
}

// ItemData is the client-side view of a RepositoryLocalObjectData item as
// returned by Read. Only the fields this client works with are mapped;
// publication-specific fields are empty for other item types.
type ItemData struct {
	ID    string `xml:"Id"`
	Title string `xml:"Title"`

	// PublicationData fields
	Key                 string `xml:"Key"`
	PublicationPath     string `xml:"PublicationPath"`
	PublicationURL      string `xml:"PublicationUrl"`
	MultimediaPath      string `xml:"MultimediaPath"`
	MultimediaURL       string `xml:"MultimediaUrl"`
	Parents             []Link `xml:"Parents>LinkToRepositoryData"`
	BusinessProcessType *Link  `xml:"BusinessProcessType"`
}

// PublicationInput carries the fields of a PublicationData item submitted
// on Create or Update. The zero value of an optional field omits it from
// the wire message.
type PublicationInput struct {
	ID                  string
	Title               string
	Key                 string
	PublicationPath     string
	PublicationURL      string
	MultimediaPath      string
	MultimediaURL       string
	Parents             []string // TCM URIs; nil omits the element, empty replaces with none
	BusinessProcessType string   // TCM URI
}

// BusinessProcessTypeData is one entry of a GetBusinessProcessTypes result.
type BusinessProcessTypeData struct {
	ID    string `xml:"Id"`
	Title string `xml:"Title"`
}
