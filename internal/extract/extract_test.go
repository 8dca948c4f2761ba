package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/archcritic/internal/schema"
)

func TestExtract_EmptyInput_DefaultProfile(t *testing.T) {
	a := Extract("")

	assert.Equal(t, []string{ModuleMobile, ModuleCore}, a.Modules)
	assert.Empty(t, a.External)
	assert.Equal(t, schema.HostingCloud, a.Hosting)
	assert.Empty(t, a.Compliance)
	assert.Equal(t, DefaultUsers, a.Users)
}

func TestExtract_NoKeywordHits_AnchorsOnly(t *testing.T) {
	a := Extract("hello world")
	assert.Equal(t, []string{"Fiori", "S/4HANA"}, a.Modules)
}

func TestExtract_ModuleHit_AddsAnchors(t *testing.T) {
	a := Extract("Finance only")
	assert.Equal(t, []string{"FI", "Fiori", "S/4HANA"}, a.Modules)
}

func TestExtract_SubstringMatchesInsideWords(t *testing.T) {
	// "salesforce" contains "sales"; "purpose" contains "pos".
	a := Extract("salesforce for every purpose")
	assert.Contains(t, a.Modules, "SD")
	assert.Equal(t, []string{"Salesforce CRM", "POS"}, a.External)
}

func TestExtract_ExternalsFollowRegistryOrder(t *testing.T) {
	a := Extract("Connect the EHR, then Oracle, then Salesforce")
	assert.Equal(t, []string{"Salesforce CRM", "Oracle DB (Legacy)", "EHR"}, a.External)
}

func TestExtract_Hosting(t *testing.T) {
	tests := []struct {
		name string
		text string
		want schema.Hosting
	}{
		{"default", "nothing about deployment", schema.HostingCloud},
		{"on-prem", "keep it on-prem", schema.HostingOnPrem},
		{"on prem spaced", "stay on prem", schema.HostingOnPrem},
		{"azure", "Deploy on Azure", schema.HostingAzure},
		{"aws", "Deploy on AWS", schema.HostingAWS},
		{"on-prem then hybrid", "on-prem shop floor, hybrid core", schema.HostingHybrid},
		{"azure and aws", "azure for dev, aws for prod", schema.HostingAWS},
		{"aws before azure in text", "aws for prod, azure for dev", schema.HostingAWS},
		{"on-prem and azure", "on-prem DR with azure primary", schema.HostingAzure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.text).Hosting)
		})
	}
}

func TestExtract_Compliance_ScanOrderUppercased(t *testing.T) {
	a := Extract("ISO 9001, GDPR and PCI-DSS")
	assert.Equal(t, []string{"GDPR", "PCI-DSS", "ISO"}, a.Compliance)
}

func TestExtract_Users(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"employees", "2500 employees", 2500},
		{"none", "no numbers here", DefaultUsers},
		{"too short", "12 users", DefaultUsers},
		{"too long", "1234567 users", DefaultUsers},
		{"first wins", "300 stores and 9000 users", 300},
		{"phone fragment", "call 555-0100", 555},
		{"six digits", "120000 users", 120000},
		{"zeros", "room 000", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.text).Users)
		})
	}
}

func TestExtract_EndToEndScenario(t *testing.T) {
	a := Extract("Implement S/4HANA finance and procurement, integrate Salesforce and 3PL, deploy on AWS, GDPR compliance, 5000 users")

	for _, m := range []string{"FI", "MM", "S/4HANA", "Fiori"} {
		assert.Contains(t, a.Modules, m)
	}
	require.Equal(t, []string{"Salesforce CRM", "3PL / Logistics"}, a.External)
	assert.Equal(t, schema.HostingAWS, a.Hosting)
	assert.Equal(t, []string{"GDPR"}, a.Compliance)
	assert.Equal(t, 5000, a.Users)
}

func TestExtract_ModulesSorted(t *testing.T) {
	a := Extract("warehouse picking, quality inspection, finance ledger, freight")
	assert.IsIncreasing(t, a.Modules)
}

func TestRegistries(t *testing.T) {
	assert.Len(t, ModuleTags(), 13)
	assert.Equal(t, []string{
		"Salesforce CRM", "Oracle DB (Legacy)", "3PL / Logistics",
		"E-commerce", "IoT Gateway", "POS", "EHR",
	}, ExternalTags())
	assert.Equal(t, []string{"GDPR", "HIPAA", "PCI-DSS", "ISO"}, ComplianceTags())
}
