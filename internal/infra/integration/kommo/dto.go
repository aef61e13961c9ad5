package kommo

type EntityRef struct {
	ID int `json:"id"`
}

type Tag struct {
	Name string `json:"name"`
}

type LeadRequest struct {
	Name     string       `json:"name"`
	Embedded LeadEmbedded `json:"_embedded"`
}

type LeadEmbedded struct {
	Tags     []Tag       `json:"tags,omitempty"`
	Contacts []EntityRef `json:"contacts,omitempty"`
}

type ContactRequest struct {
	Name               string             `json:"name"`
	CustomFieldsValues []CustomFieldValue `json:"custom_fields_values,omitempty"`
}

type CustomFieldValue struct {
	FieldCode string       `json:"field_code"`
	Values    []FieldValue `json:"values"`
}

type FieldValue struct {
	Value    string `json:"value"`
	EnumCode string `json:"enum_code"`
}
