package stac

import "encoding/json"

// Link is a STAC link. Members such as "method" or "body" of POST links
// are kept in AdditionalFields.
type Link struct {
	Href  string `json:"href"`
	Rel   string `json:"rel"`
	Type  string `json:"type,omitempty"`
	Title string `json:"title,omitempty"`

	AdditionalFields map[string]any `json:"-"`
}

var knownLinkFields = map[string]bool{
	"href": true, "rel": true, "type": true, "title": true,
}

func (link *Link) UnmarshalJSON(data []byte) error {
	type linkAlias Link
	var aux linkAlias
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*link = Link(aux)

	extra, err := foreignMembers(data, knownLinkFields)
	if err != nil {
		return err
	}
	link.AdditionalFields = extra
	return nil
}

func (link Link) MarshalJSON() ([]byte, error) {
	type linkAlias Link
	data, err := json.Marshal(linkAlias(link))
	if err != nil {
		return nil, err
	}
	return withMembers(data, link.AdditionalFields, nil)
}

// Asset is a downloadable file of a scene. Extension members such as
// "eo:bands" are kept in AdditionalFields.
type Asset struct {
	Href        string   `json:"href"`
	Type        string   `json:"type,omitempty"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Roles       []string `json:"roles,omitempty"`

	AdditionalFields map[string]any `json:"-"`
}

var knownAssetFields = map[string]bool{
	"href": true, "type": true, "title": true, "description": true, "roles": true,
}

func (asset *Asset) UnmarshalJSON(data []byte) error {
	type assetAlias Asset
	var aux assetAlias
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*asset = Asset(aux)

	extra, err := foreignMembers(data, knownAssetFields)
	if err != nil {
		return err
	}
	asset.AdditionalFields = extra
	return nil
}

func (asset Asset) MarshalJSON() ([]byte, error) {
	type assetAlias Asset
	data, err := json.Marshal(assetAlias(asset))
	if err != nil {
		return nil, err
	}
	return withMembers(data, asset.AdditionalFields, nil)
}
