package extract

import "github.com/dshills/archcritic/internal/schema"

// Anchor module tags. Every analysis carries both.
const (
	ModuleCore   = "S/4HANA"
	ModuleMobile = "Fiori"
)

// rule maps a tag to the keywords that select it. Matching is plain
// substring containment on lower-cased text.
type rule struct {
	Tag      string
	Keywords []string
}

var moduleRules = []rule{
	{Tag: "FI", Keywords: []string{"finance", "ledger", "invoice", "tax", "closing"}},
	{Tag: "MM", Keywords: []string{"procure", "procurement", "purchase", "supplier", "inventory"}},
	{Tag: "SD", Keywords: []string{"sales", "order", "customer", "delivery", "billing"}},
	{Tag: "PP", Keywords: []string{"production", "shop", "mrp", "bom", "routing"}},
	{Tag: "QM", Keywords: []string{"quality", "inspection", "defect"}},
	{Tag: "PM", Keywords: []string{"maintenance", "asset", "breakdown"}},
	{Tag: "EWM", Keywords: []string{"warehouse", "wms", "picking", "putaway"}},
	{Tag: "BW/4HANA", Keywords: []string{"analytics", "bi", "report", "kpi", "bw/4hana"}},
	{Tag: ModuleMobile, Keywords: []string{"fiori", "mobile", "ui"}},
	{Tag: "IBP", Keywords: []string{"forecast", "planning", "ibp"}},
	{Tag: "TM", Keywords: []string{"freight", "carrier", "transport"}},
	{Tag: "MDG", Keywords: []string{"master data", "governance", "mdg"}},
	{Tag: ModuleCore, Keywords: []string{"s/4hana"}},
}

// externalRules is scanned in declaration order; that order is the output order.
var externalRules = []rule{
	{Tag: "Salesforce CRM", Keywords: []string{"salesforce"}},
	{Tag: "Oracle DB (Legacy)", Keywords: []string{"oracle"}},
	{Tag: "3PL / Logistics", Keywords: []string{"3pl", "logistics provider"}},
	{Tag: "E-commerce", Keywords: []string{"shopify", "magento", "e-commerce", "ecommerce"}},
	{Tag: "IoT Gateway", Keywords: []string{"iot", "sensor", "plc"}},
	{Tag: "POS", Keywords: []string{"pos"}},
	{Tag: "EHR", Keywords: []string{"ehr", "hl7", "fhir"}},
}

// hostingOverride is one step of the hosting chain.
type hostingOverride struct {
	Keywords []string
	Hosting  schema.Hosting
}

// hostingChain is applied in order and every hit overwrites the previous
// value, so the last matching step wins.
var hostingChain = []hostingOverride{
	{Keywords: []string{"on-prem", "on prem"}, Hosting: schema.HostingOnPrem},
	{Keywords: []string{"azure"}, Hosting: schema.HostingAzure},
	{Keywords: []string{"aws"}, Hosting: schema.HostingAWS},
	{Keywords: []string{"hybrid"}, Hosting: schema.HostingHybrid},
}

var complianceTokens = []string{"gdpr", "hipaa", "pci-dss", "iso"}

// DefaultUsers is the user estimate when the text carries no usable number.
const DefaultUsers = 1000

// ModuleTags returns the module registry tags in declaration order.
func ModuleTags() []string {
	return tags(moduleRules)
}

// ExternalTags returns the external-system registry tags in declaration order.
func ExternalTags() []string {
	return tags(externalRules)
}

// ComplianceTags returns the upper-cased compliance tags in scan order.
func ComplianceTags() []string {
	out := make([]string, len(complianceTokens))
	for i, tok := range complianceTokens {
		out[i] = upper(tok)
	}
	return out
}

func tags(rules []rule) []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.Tag
	}
	return out
}
