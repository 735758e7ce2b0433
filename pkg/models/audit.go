package models

// AuditOptions configures audit generation
type AuditOptions struct {
	// AdditionalOptions as accepted by the audit endpoint, such as
	// daysAbandonedWorkflow or the risk categories to include
	AdditionalOptions map[string]interface{} `json:"additionalOptions,omitempty"`
}

// Audit is a security audit report. Each section is a raw risk report as
// produced by the server; sections not covered by the audit are nil.
type Audit struct {
	Credentials map[string]interface{} `json:"credentials,omitempty"`
	Database    map[string]interface{} `json:"database,omitempty"`
	Filesystem  map[string]interface{} `json:"filesystem,omitempty"`
	Nodes       map[string]interface{} `json:"nodes,omitempty"`
	Instance    map[string]interface{} `json:"instance,omitempty"`
}
