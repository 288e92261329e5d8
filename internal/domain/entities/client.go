package entities

// ClientSnapshot is a copy of the client's contact data taken when a document
// is issued. Later edits to the client record do not reach it.
//
// Quotations and remissions carry a snapshot; orders carry a ClientRef instead.
// Email composition reads the snapshot.
type ClientSnapshot struct {
	ClientID string `json:"client_id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	City     string `json:"city"`
}

// ClientRef is a live link to the client record.
type ClientRef struct {
	ClientID string `json:"client_id"`
}

func (s ClientSnapshot) Ref() ClientRef {
	return ClientRef{ClientID: s.ClientID}
}
