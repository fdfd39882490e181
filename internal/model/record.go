package model

import "strings"

// Sentinel values substituted during normalization so that prompt
// construction never has to branch on missing fields.
const (
	// Unknown replaces empty descriptive fields (status, owners, etc.).
	Unknown = "Unknown"
	// NotAvailable replaces empty data-source links.
	NotAvailable = "N/A"
)

// ClientRecord is the normalized view of one client row in the pitch
// database. Every field except Services is a plain string; after
// Normalize, descriptive fields carry Unknown and link fields carry
// N/A instead of empty values.
type ClientRecord struct {
	Name              string   `json:"name" yaml:"name"`
	Status            string   `json:"status" yaml:"status"`
	Category          string   `json:"category" yaml:"category"`
	Services          []string `json:"services" yaml:"services"`
	AccountOwner      string   `json:"account_owner" yaml:"account_owner"`
	SalesOwner        string   `json:"sales_owner" yaml:"sales_owner"`
	QualificationCall string   `json:"qualification_call" yaml:"qualification_call"`
	DiscoveryCall     string   `json:"discovery_call" yaml:"discovery_call"`
	DiscoveryNotes    string   `json:"discovery_notes" yaml:"discovery_notes"`
	PitchStrategy     string   `json:"pitch_strategy" yaml:"pitch_strategy"`
	PitchDeck         string   `json:"pitch_deck" yaml:"pitch_deck"`
}

// Normalize trims the client name and fills empty fields with the
// Unknown / N/A sentinels. It does not validate the name; extraction
// rejects records whose trimmed name is empty.
func (r *ClientRecord) Normalize() {
	r.Name = strings.TrimSpace(r.Name)

	for _, f := range []*string{&r.Status, &r.Category, &r.AccountOwner, &r.SalesOwner} {
		if strings.TrimSpace(*f) == "" {
			*f = Unknown
		}
	}
	for _, f := range []*string{&r.QualificationCall, &r.DiscoveryCall, &r.DiscoveryNotes, &r.PitchStrategy, &r.PitchDeck} {
		if strings.TrimSpace(*f) == "" {
			*f = NotAvailable
		}
	}
}

// ServicesLine renders the services list for display and prompts,
// falling back to Unknown when the list is empty.
func (r *ClientRecord) ServicesLine() string {
	if len(r.Services) == 0 {
		return Unknown
	}
	return strings.Join(r.Services, ", ")
}
