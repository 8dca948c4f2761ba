// Package examples ships the built-in requirement packs.
package examples

import (
	"fmt"
	"strings"
)

// Example is a named requirements text.
type Example struct {
	Name string
	Slug string
	Text string
}

// DefaultSlug selects the pack used when nothing else is given.
const DefaultSlug = "finance"

var library = []Example{
	{
		Name: "Finance (Default)",
		Slug: "finance",
		Text: `- Implement SAP S/4HANA for finance, logistics, and procurement modules
- Integrate with existing Salesforce CRM and legacy Oracle database
- Enable real-time analytics through SAP BW/4HANA
- Ensure GDPR compliance and role-based access control
- Deploy on AWS Cloud with disaster recovery in a different region
- Enable Fiori-based mobile access for employees
- Automate purchase order approvals using workflow automation
- Ensure API-based integration with third-party logistics providers`,
	},
	{
		Name: "Manufacturing",
		Slug: "manufacturing",
		Text: `- S/4HANA with PP, QM, PM and EWM for factory + DC
- Integrate shop-floor IoT (sensors / PLCs) via gateway; OEE dashboards
- Predictive maintenance data flows to data lake
- ISO 9001 and OSHA compliance; role-based access
- Hybrid: on-prem shop-floor, cloud S/4 core; DR cross-region
- Fiori apps for supervisors and operators
- Automated quality hold/release workflow`,
	},
	{
		Name: "Retail",
		Slug: "retail",
		Text: `- S/4HANA for Retail with inventory and pricing
- Integrate POS + e-commerce (Shopify/Magento)
- Real-time sales analytics; demand forecasting
- PCI-DSS compliance; tokenized payments
- Deploy on Azure; multi-region failover
- Click-and-collect and 3PL shipping APIs
- Fiori apps for store managers`,
	},
	{
		Name: "Healthcare",
		Slug: "healthcare",
		Text: `- S/4HANA for patient billing and supply chain
- Integrate with EHR; HL7/FHIR interoperability
- Real-time medical inventory and cold-chain tracking
- HIPAA compliance and auditing
- AWS deployment with strong encryption + DR
- Mobile Fiori for clinicians
- Automated approvals for high-value purchases`,
	},
}

// All returns the library in display order.
func All() []Example {
	return append([]Example(nil), library...)
}

// Get returns the example whose slug or display name matches name,
// ignoring case.
func Get(name string) (Example, error) {
	for _, ex := range library {
		if strings.EqualFold(name, ex.Slug) || strings.EqualFold(name, ex.Name) {
			return ex, nil
		}
	}
	return Example{}, fmt.Errorf("unknown example %q: valid examples are %s", name, strings.Join(Slugs(), ", "))
}

// Slugs returns the example slugs in display order.
func Slugs() []string {
	out := make([]string, len(library))
	for i, ex := range library {
		out[i] = ex.Slug
	}
	return out
}

// Source is the Requirements source label for an example.
func (e Example) Source() string {
	return "example:" + e.Slug
}
